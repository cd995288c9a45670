package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Nydauron/cyclingportal/portal"
	"github.com/Nydauron/cyclingportal/store"
)

// portalSource is where a command loads the portal from and saves it back to.
type portalSource interface {
	Load() (*portal.Portal, error)
	Save(p *portal.Portal) error
	Close() error
}

type fileSource struct {
	path string
}

func (s fileSource) Load() (*portal.Portal, error) {
	p := portal.New()
	p.SetLogger(logger)
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("path", s.path).Msg("no snapshot yet, starting empty")
		return p, nil
	}
	if err := p.Load(s.path); err != nil {
		return nil, err
	}
	return p, nil
}

func (s fileSource) Save(p *portal.Portal) error {
	return p.Save(s.path)
}

func (fileSource) Close() error { return nil }

type badgerSource struct {
	store *store.BadgerStore
	name  string
}

func (s badgerSource) Load() (*portal.Portal, error) {
	snap, err := s.store.Get(s.name)
	if errors.Is(err, store.ErrNotFound) {
		p := portal.New()
		p.SetLogger(logger)
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := portal.Import(snap)
	if err != nil {
		return nil, err
	}
	p.SetLogger(logger)
	return p, nil
}

func (s badgerSource) Save(p *portal.Portal) error {
	return s.store.Put(s.name, p.Export())
}

func (s badgerSource) Close() error {
	return s.store.Close()
}

func openSource(cCtx *cli.Context) (portalSource, error) {
	if dir := cCtx.String(dbFlag); dir != "" {
		st, err := store.Open(dir, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("db", dir).Str("name", cCtx.String(portalFlag)).Msg("using badger store")
		return badgerSource{store: st, name: cCtx.String(portalFlag)}, nil
	}
	return fileSource{path: cCtx.String(snapshotFlag)}, nil
}

// withPortal loads the portal, runs fn and, when save is set and fn succeeded, writes
// the portal back.
func withPortal(cCtx *cli.Context, save bool, fn func(p *portal.Portal) error) error {
	src, err := openSource(cCtx)
	if err != nil {
		return cli.Exit(err.Error(), exitInput)
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Err(err).Msg("closing portal source")
		}
	}()

	p, err := src.Load()
	if err != nil {
		return cli.Exit(err.Error(), exitParse)
	}
	if err := fn(p); err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := src.Save(p); err != nil {
		return cli.Exit(err.Error(), exitEncoding)
	}
	return nil
}
