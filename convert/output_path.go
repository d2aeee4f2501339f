package convert

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"jahia2wp/config"
	"jahia2wp/state"
)

const outputExt = ".yaml"

// buildOutputPath returns output file path for converted export. src is the
// export path relative to the processed source (for archives it starts with
// archive name), name comes either from the source file or from user
// template which may also introduce subdirectories.
func buildOutputPath(doc *Document, src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultFile := cleanPathSegment(stem(src), env) + outputExt

	tmpl := env.Cfg.Conversion.OutputNameTemplate
	if tmpl == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, tmpl, newValues(doc, src))
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(outDir, defaultFile)
	}

	segments := splitPath(expanded)
	if len(segments) == 0 {
		return filepath.Join(outDir, defaultFile)
	}
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	parts[len(parts)-1] += outputExt
	return filepath.Join(parts...)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// stem returns file name without directories and extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// splitPath returns non empty path segments, "." and ".." are dropped so
// template cannot escape destination.
func splitPath(path string) []string {
	return slices.DeleteFunc(strings.Split(filepath.ToSlash(path), "/"), func(s string) bool {
		return s == "" || s == "." || s == ".."
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Conversion.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
