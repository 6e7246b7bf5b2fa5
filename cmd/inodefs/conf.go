package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/majiru/inodefs"
	"github.com/majiru/inodefs/fs/diskfs"
	"github.com/majiru/inodefs/fs/jukeboxfs"
	"github.com/majiru/inodefs/fs/mkvfs"
	"github.com/majiru/inodefs/fs/mountfs"
	"github.com/majiru/inodefs/fs/ramfs"
)

type FSConf struct {
	Name  string
	Mount string
	Args  []string
	fs    inodefs.Fs
}

type Config struct {
	HTTPAddr  string
	NinePAddr string
	Mounts    []*FSConf
}

func genDefaultConf(w io.Writer) error {
	conf := Config{
		":8080",
		":5640",
		[]*FSConf{
			{"diskfs", "www", []string{"./www"}, nil},
			{"ramfs", "tmp", []string{}, nil},
			{"mkvfs", "mkv", []string{}, nil},
		},
	}

	json, err := json.MarshalIndent(conf, "", "\t")
	if err != nil {
		return err
	}
	_, err = w.Write(json)
	return err
}

func parseFSConf(c *FSConf) error {
	var err error

	switch c.Name {
	case "diskfs":
		if len(c.Args) != 1 {
			return errors.New("parseFSConf: diskfs takes exactly one root directory")
		}
		c.fs = &diskfs.Diskfs{Root: c.Args[0]}
	case "ramfs":
		c.fs = ramfs.New()
	case "mkvfs":
		c.fs = mkvfs.NewMKVfs()
	case "jukefs", "jukeboxfs":
		if len(c.Args) != 1 {
			return errors.New("parseFSConf: Not enough/Too many args to jukeboxfs")
		}
		c.fs, err = jukeboxfs.NewJukefs(c.Args[0])
	default:
		return errors.New("parseFSConf: Unknown fs " + c.Name)
	}
	return err
}

func readConf(confFile io.Reader) (*Config, error) {
	b, err := io.ReadAll(confFile)
	if err != nil {
		return nil, err
	}

	conf := &Config{}
	if err = json.Unmarshal(b, conf); err != nil {
		return nil, err
	}

	for i := range conf.Mounts {
		if err = parseFSConf(conf.Mounts[i]); err != nil {
			return nil, err
		}
	}
	return conf, nil
}

func conf2Mountfs(conf *Config) *mountfs.Mountfs {
	fs := mountfs.NewMountfs()
	for _, c := range conf.Mounts {
		fs.Mount(c.Mount, c.fs)
	}
	return fs
}
