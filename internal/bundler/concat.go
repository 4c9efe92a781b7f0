package bundler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

// ConcatName is the name of the built-in backend.
const ConcatName = "concat"

// VersionPlaceholder in an output name is replaced by a short content hash.
const VersionPlaceholder = "%(version)s"

// Concat joins the bundle sources, in order, into the output file. It applies
// no filters and rejects bundles that ask for any.
type Concat struct{}

func NewConcat() *Concat { return &Concat{} }

func init() {
	if err := Register(NewConcat()); err != nil {
		panic(err)
	}
}

func (c *Concat) Name() string { return ConcatName }

func (c *Concat) Build(ctx context.Context, job Job) (Result, error) {
	name := job.Bundle.Name
	output := job.Bundle.Output()
	if output == "" {
		return Result{}, errors.BuildError(fmt.Sprintf("bundle %q has no output", name)).
			WithContext("bundle", name).
			Build()
	}
	if filters := filterNames(job.Bundle.Options["filters"]); len(filters) > 0 {
		return Result{}, errors.BuildError(fmt.Sprintf("bundle %q: concat backend does not support filters %v", name, filters)).
			WithContext("bundle", name).
			WithContext("filters", filters).
			Build()
	}

	if err := containedOutput(job.OutputDir, output); err != nil {
		return Result{}, err
	}

	var sources []string
	if err := collectSources(ctx, job.Bundle.Contents, job.LoadPath, &sources); err != nil {
		return Result{}, fmt.Errorf("bundle %q: %w", name, err)
	}

	res := Result{Bundle: name, Sources: sources}
	versioned := strings.Contains(output, VersionPlaceholder)

	if !versioned {
		res.Output = output
		res.Path = filepath.Join(job.OutputDir, filepath.FromSlash(output))
		if !job.Debug && upToDate(res.Path, sources) {
			res.Skipped = true
			return res, nil
		}
	}

	data, err := concatenate(ctx, sources)
	if err != nil {
		return Result{}, err
	}

	if versioned {
		sum := md5.Sum(data) //nolint:gosec // content fingerprint, not a security boundary
		res.Output = strings.ReplaceAll(output, VersionPlaceholder, hex.EncodeToString(sum[:])[:8])
		res.Path = filepath.Join(job.OutputDir, filepath.FromSlash(res.Output))
		if !job.Debug && fileExists(res.Path) {
			res.Skipped = true
			return res, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(res.Path), 0o755); err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryFileSystem, "create bundle output directory").
			WithContext("path", res.Path).
			Build()
	}
	if err := os.WriteFile(res.Path, data, 0o644); err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryFileSystem, "write bundle output").
			WithContext("path", res.Path).
			Build()
	}
	return res, nil
}

// containedOutput rejects outputs that are absolute or climb out of dir.
func containedOutput(dir, output string) error {
	rel := filepath.FromSlash(output)
	if !filepath.IsAbs(rel) {
		joined := filepath.Join(dir, rel)
		if r, err := filepath.Rel(filepath.Clean(dir), joined); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return nil
		}
	}
	return errors.ValidationError(fmt.Sprintf("bundle output %q escapes the output directory", output)).
		WithContext("output", output).
		WithContext("output_dir", dir).
		Build()
}

// collectSources flattens contents into source files. Entries are file names
// or glob patterns relative to the load path, nested lists, or nested bundle
// mappings with their own "contents".
func collectSources(ctx context.Context, contents []any, loadPath []string, out *[]string) error {
	for _, item := range contents {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch v := item.(type) {
		case string:
			found, err := locate(v, loadPath)
			if err != nil {
				return err
			}
			*out = append(*out, found...)
		case []any:
			if err := collectSources(ctx, v, loadPath, out); err != nil {
				return err
			}
		case map[string]any:
			if filters := filterNames(v["filters"]); len(filters) > 0 {
				return errors.BuildError(fmt.Sprintf("nested bundle: concat backend does not support filters %v", filters)).Build()
			}
			nested, ok := v["contents"]
			if !ok {
				return errors.ValidationError("nested bundle has no contents").Build()
			}
			list, ok := nested.([]any)
			if !ok {
				list = []any{nested}
			}
			if err := collectSources(ctx, list, loadPath, out); err != nil {
				return err
			}
		default:
			return errors.ValidationError(fmt.Sprintf("unsupported bundle content %v (%T)", v, v)).Build()
		}
	}
	return nil
}

// locate finds name in the first load path directory that has it. A glob
// pattern yields every match from that directory, sorted.
func locate(name string, loadPath []string) ([]string, error) {
	if filepath.IsAbs(name) {
		if fileExists(name) {
			return []string{name}, nil
		}
		return nil, notFound(name, loadPath)
	}
	rel := filepath.FromSlash(name)
	glob := strings.ContainsAny(name, "*?[")
	for _, dir := range loadPath {
		candidate := filepath.Join(dir, rel)
		if !glob {
			if fileExists(candidate) {
				return []string{candidate}, nil
			}
			continue
		}
		matches, err := filepath.Glob(candidate)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("bad pattern %q", name)).WithCause(err).Build()
		}
		matches = slices.DeleteFunc(matches, func(m string) bool { return !fileExists(m) })
		if len(matches) > 0 {
			slices.Sort(matches)
			return matches, nil
		}
	}
	return nil, notFound(name, loadPath)
}

func notFound(name string, loadPath []string) error {
	return errors.FileSystemError(fmt.Sprintf("source %q not found in load path", name)).
		WithContext("source", name).
		WithContext("load_path", loadPath).
		Build()
}

func concatenate(ctx context.Context, sources []string) ([]byte, error) {
	var buf bytes.Buffer
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "read bundle source").
				WithContext("path", src).
				Build()
		}
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// upToDate reports whether target exists and is newer than every source.
func upToDate(target string, sources []string) bool {
	info, err := os.Stat(target)
	if err != nil {
		return false
	}
	built := info.ModTime()
	for _, src := range sources {
		if newerThan(src, built) {
			return false
		}
	}
	return true
}

func newerThan(path string, t time.Time) bool {
	info, err := os.Stat(path)
	return err != nil || info.ModTime().After(t)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// filterNames normalizes the "filters" option, which may be a comma separated
// string or a list.
func filterNames(v any) []string {
	var names []string
	switch f := v.(type) {
	case nil:
	case string:
		for _, part := range strings.Split(f, ",") {
			if p := strings.TrimSpace(part); p != "" {
				names = append(names, p)
			}
		}
	case []any:
		for _, item := range f {
			names = append(names, fmt.Sprint(item))
		}
	case []string:
		names = append(names, f...)
	default:
		names = append(names, fmt.Sprint(f))
	}
	return names
}
