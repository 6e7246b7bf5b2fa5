package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"aqwari.net/net/styx"
	"github.com/majiru/inodefs/pkg/server"
)

var (
	confPath = flag.String("c", "inodefs.json", "config file")
	genConf  = flag.Bool("g", false, "write a default config to stdout and exit")
)

func main() {
	flag.Parse()
	if *genConf {
		if err := genDefaultConf(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	f, err := os.Open(*confPath)
	if err != nil {
		log.Fatal(err)
	}
	conf, err := readConf(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	srv := server.Server{Fs: conf2Mountfs(conf)}
	if conf.HTTPAddr != "" {
		go func() {
			log.Println("serving http on", conf.HTTPAddr)
			log.Fatal(http.ListenAndServe(conf.HTTPAddr, srv))
		}()
	}
	log.Println("serving 9p on", conf.NinePAddr)
	log.Fatal(styx.ListenAndServe(conf.NinePAddr, styx.HandlerFunc(srv.Serve9P)))
}
