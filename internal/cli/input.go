package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/catmaid"
	"github.com/arborlabs/arbor/pkg/config"
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// neuronInput binds the flags every morphology command shares: a neuron
// comes either from a local SWC file or from the configured CATMAID
// server by skeleton id.
type neuronInput struct {
	swcPath    string
	skeletonID int64
	configPath *string
}

func (in *neuronInput) bind(cmd *cobra.Command, configPath *string) {
	in.configPath = configPath
	cmd.Flags().StringVar(&in.swcPath, "swc", "", "read the neuron from an SWC file")
	cmd.Flags().Int64Var(&in.skeletonID, "id", 0, "fetch the neuron from the configured CATMAID server")
}

// load resolves the input flags into a Skeleton. Exactly one of --swc
// and --id must be given.
func (in *neuronInput) load(ctx context.Context) (*skeleton.Skeleton, error) {
	switch {
	case in.swcPath != "" && in.skeletonID != 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "--swc and --id are mutually exclusive")
	case in.swcPath != "":
		return readSWCFile(in.swcPath)
	case in.skeletonID != 0:
		client, cleanup, err := in.client(ctx)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		return client.GetSkeleton(ctx, in.skeletonID)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "pass --swc FILE or --id SKELETON_ID")
	}
}

// client builds a CATMAID client from the config file. The returned
// cleanup closes the cache backend.
func (in *neuronInput) client(ctx context.Context) (*catmaid.Client, func(), error) {
	cfg, err := config.Load(*in.configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Server.URL == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"no CATMAID server configured; set server.url in the config file")
	}

	store, err := cfg.Cache.Open()
	if err != nil {
		return nil, nil, err
	}

	client := catmaid.NewClient(catmaid.Config{
		BaseURL:  cfg.Server.URL,
		Token:    cfg.Server.Token,
		User:     cfg.Server.User,
		Password: cfg.Server.Password,
		Project:  cfg.Server.Project,
	}, store, cfg.Cache.CacheTTL(), loggerFromContext(ctx))

	return client, func() { _ = store.Close() }, nil
}

func readSWCFile(path string) (*skeleton.Skeleton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "opening %s", path)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return skeleton.ReadSWC(f, name, 0)
}

// writeSWCFile writes a transformed neuron back to disk.
func writeSWCFile(sk *skeleton.Skeleton, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "creating %s", path)
	}
	defer f.Close()
	return sk.WriteSWC(f)
}
