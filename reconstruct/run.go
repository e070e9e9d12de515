package reconstruct

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pdfreflow/refmap"
	"pdfreflow/state"
)

// Run is the cmd/fbc "reconstruct" subcommand action: it reads a page feed
// in the JSON shape JSONSource decodes, runs Pipeline.Run over it, writes the
// resulting document tree to DESTINATION (or stdout), and exports the
// reference mapper if --mapper-out was given.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("reconstruct")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input fragment feed has been specified")
	}

	cfg, err := LoadConfig(cmd.String("reconstruct-config"))
	if err != nil {
		return err
	}
	if mapperOut := cmd.String("mapper-out"); mapperOut != "" {
		cfg.MapperExportPath = mapperOut
	}

	source, err := NewJSONSource(src)
	if err != nil {
		return err
	}

	mapper, err := refmap.NewMapper()
	if err != nil {
		return fmt.Errorf("reconstruct: unable to open reference mapper: %w", err)
	}
	defer mapper.Close()

	pipeline := NewPipeline(*cfg, log)
	book, err := pipeline.Run(ctx, source, mapper)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	out := os.Stdout
	if dst != "" {
		if out, err = os.Create(dst); err != nil {
			return fmt.Errorf("reconstruct: unable to create destination file %q: %w", dst, err)
		}
		defer out.Close()
	}
	if _, err := fmt.Fprintln(out, book.String()); err != nil {
		return fmt.Errorf("reconstruct: unable to write document tree: %w", err)
	}

	if cfg.MapperExportPath != "" {
		if err := mapper.Export(cfg.MapperExportPath); err != nil {
			return fmt.Errorf("reconstruct: unable to export reference mapper: %w", err)
		}
		log.Info("Exported reference mapper", zap.String("path", filepath.Clean(cfg.MapperExportPath)))
	}

	if unresolved, err := mapper.UnresolvedIDs(); err == nil && len(unresolved) > 0 {
		sort.Sort(natural.StringSlice(unresolved))
		log.Warn("Unresolved resource references remain", zap.Strings("ids", unresolved))
	}

	return nil
}
