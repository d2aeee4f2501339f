// Package convert runs conversion of Jahia exports: finds export files, runs
// page pass over every export and writes result documents.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"jahia2wp/archive"
	"jahia2wp/jahia"
	"jahia2wp/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if lang := cmd.String("lang"); lang != "" {
		if normalized := jahia.NormalizeLanguage(lang); normalized != "" {
			env.Cfg.Conversion.Language = normalized
		}
	}
	if cmd.Bool("resolve-redirects") {
		env.Cfg.Conversion.Redirects.Resolve = true
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.PrepareRedirects()

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("run_id", env.RunID))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process determines the input type (directory, archive with optional path
// inside, or single export file) and processes accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			pathIn := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, pathIn, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		isExport, err := isExportFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if isExport && len(tail) == 0 {
			file, err := os.Open(head)
			if err != nil {
				return fmt.Errorf("unable to process file: %w", err)
			}
			defer file.Close()
			// single file may have any name, site is named after directory
			site := filepath.Base(filepath.Dir(head))
			return processExport(ctx, file, filepath.Base(head), site, dst, log)
		}
		return fmt.Errorf("input was not recognized as Jahia export (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding site archives and language exports.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		if !jahia.IsExportName(path) {
			log.Debug("Skipping file, not recognized as export or archive", zap.String("file", path))
			return nil
		}
		isExport, err := isExportFile(path)
		if err != nil || !isExport {
			log.Warn("Skipping file, not XML", zap.String("file", path), zap.Error(err))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		if err := processExport(ctx, file, rel, filepath.Base(filepath.Dir(path)), dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processArchive converts all language exports found under "pathIn" inside
// site archive. Results are placed under "pathOut/<archive name>".
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	site := stem(path)
	match := archive.All(archive.Prefix(pathIn), jahia.IsExportName)

	err = archive.Walk(path, match, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		src := filepath.Join(pathOut, site, filepath.FromSlash(f.FileHeader.Name))
		if err := processExport(ctx, r, src, site, dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

// processExport converts single language export. "src" is the export path
// relative to the processed source (always including file name), it
// determines output location under "dst".
func processExport(ctx context.Context, r io.Reader, src, siteName, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// one broken export must not stop the whole batch
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	export, err := jahia.ReadExport(r)
	if err != nil {
		return fmt.Errorf("unable to parse export (%s): %w", src, err)
	}

	lang := jahia.ExportLanguage(src)
	if lang == "" {
		lang = env.Cfg.Conversion.Language
		log.Debug("Export name has no language, using configured", zap.String("lang", lang))
	}

	site, err := jahia.LoadSite(export, siteName, lang, log)
	if err != nil {
		return fmt.Errorf("unable to load site (%s): %w", src, err)
	}

	doc, registry, err := convertSite(site, siteOptions{
		Box:            env.BoxOptions(),
		Redirects:      env.Redirects,
		Now:            env.Now,
		FailOnBoxError: env.Cfg.Conversion.FailOnBoxError,
	}, log.With(zap.String("site", siteName)))
	if doc == nil {
		return fmt.Errorf("unable to convert site (%s): %w", src, err)
	}
	if err != nil {
		log.Warn("Some boxes were not converted", zap.Int("failed", len(doc.Failures)))
	}

	doc.RunID = env.RunID
	doc.Source = filepath.ToSlash(src)
	doc.Converted = env.Now().Format(time.RFC3339)

	env.Rpt.StoreData(fmt.Sprintf("sites/%s.txt", filepath.ToSlash(src)), dumpSite(site, registry, doc))

	outputName = buildOutputPath(doc, src, dst, env)
	if err := writeDocument(doc, outputName, env.Overwrite, log); err != nil {
		return err
	}

	env.Rpt.Store(fmt.Sprintf("result/%s", filepath.ToSlash(src)+outputExt), outputName)
	return nil
}

func writeDocument(doc *Document, outputName string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(outputName); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output: %w", err)
	}
	defer out.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return out.Close()
}
