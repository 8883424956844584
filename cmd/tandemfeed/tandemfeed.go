// Package main connects an event feed to a store.
//
// The config file says where frames come from (a websocket or an
// MQTT broker) and where they go (an in-memory or bolt-backed
// layout):
//
//	source: ws
//	url: ws://localhost:8080/events
//	bolt: cache.db
//	flags: channel,guild,member
//
//	source: mqtt
//	url: tcp://localhost:1883
//	clientid: tandemfeed
//	topics:
//	  - events/#
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"gopkg.in/yaml.v2"

	"github.com/tandemchat/tandem-go/boltstore"
	"github.com/tandemchat/tandem-go/feed"
	"github.com/tandemchat/tandem-go/memstore"
	"github.com/tandemchat/tandem-go/store"
)

type Config struct {
	// Source is "ws" or "mqtt".
	Source string `yaml:"source"`

	// URL is the websocket endpoint or the broker address.
	URL string `yaml:"url"`

	// ClientID and Topics only matter for MQTT.
	ClientID string   `yaml:"clientid,omitempty"`
	Topics   []string `yaml:"topics,omitempty"`

	// Bolt, when set, persists the cache to this file.
	Bolt string `yaml:"bolt,omitempty"`

	// Flags is a comma-separated list of entity families ("all"
	// when empty).
	Flags string `yaml:"flags,omitempty"`

	Debug bool `yaml:"debug,omitempty"`
}

func main() {
	configFile := flag.String("c", "tandemfeed.yaml", "config file")
	flag.Parse()

	if err := run(*configFile); err != nil {
		log.Fatal(err)
	}
}

func parseFlags(s string) (store.Flag, error) {
	if s == "" {
		return store.AllFlags, nil
	}
	var flags store.Flag
	for _, name := range strings.Split(s, ",") {
		f, have := store.ParseFlag(strings.TrimSpace(name))
		if !have {
			return 0, fmt.Errorf("unknown flag '%s'", name)
		}
		flags |= f
	}
	return flags, nil
}

func run(configFile string) error {
	bs, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}
	var config Config
	if err := yaml.Unmarshal(bs, &config); err != nil {
		return err
	}

	flags, err := parseFlags(config.Flags)
	if err != nil {
		return err
	}

	var layout store.Layout
	if config.Bolt == "" {
		layout = memstore.New(memstore.WithFlags(flags))
	} else {
		b, err := boltstore.Open(config.Bolt, boltstore.WithFlags(flags))
		if err != nil {
			return err
		}
		defer b.Close()
		layout = b
	}

	s := store.FromLayout(layout)
	dispatcher := feed.NewDispatcher(s)
	dispatcher.Debug = config.Debug

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Println("shutting down")
		cancel()
	}()

	switch config.Source {
	case "ws":
		conn, _, err := websocket.DefaultDialer.Dial(config.URL, nil)
		if err != nil {
			return err
		}
		f := feed.NewWSFeed(conn, dispatcher)
		f.Debug = config.Debug
		log.Printf("reading frames from %s", config.URL)
		if err := f.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil

	case "mqtt":
		opts := mqtt.NewClientOptions()
		opts.AddBroker(config.URL)
		if config.ClientID != "" {
			opts.SetClientID(config.ClientID)
		}
		f := feed.NewMQFeed(opts, dispatcher, config.Topics...)
		f.Debug = config.Debug
		if err := f.Start(); err != nil {
			return err
		}
		log.Printf("subscribed to %s on %s", strings.Join(config.Topics, ","), config.URL)
		<-ctx.Done()
		return f.Stop()

	default:
		return fmt.Errorf("unknown source '%s' (want ws or mqtt)", config.Source)
	}
}
