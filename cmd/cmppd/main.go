package main

import (
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/bridge"
	"github.com/robotalks/cmpp.go/pkg/env"
	fx "github.com/robotalks/cmpp.go/pkg/framework"
)

func init() {
	env.SetupFlags(nil)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf, err := env.NewConfig()
	if err != nil {
		log.Fatalln(err)
	}
	e := conf.MustNewEnv()
	defer e.Close()

	q, err := bridge.NewQueueFromURL(conf.MQTT.URL, conf.MQTT.ID)
	if err != nil {
		log.Fatalln(err)
	}
	if err := q.Connect(); err != nil {
		log.Fatalf("connect %s: %v", conf.MQTT.URL, err)
	}
	defer q.Close()

	b := &bridge.Bridge{
		ID:        conf.MQTT.ID,
		Channel:   e.Datalink.Channel,
		Transport: e.Transport,
		Store:     e.Store,
		Messenger: q,
		Interval:  conf.MQTT.StatusInterval,
	}
	glog.Infof("bridge %s serving channel %d", b.ID, b.Channel)
	if err := fx.NewRunner().HandleSignals().Go(e, b).Wait(); err != nil {
		glog.Errorf("exit: %v", err)
	}
}
