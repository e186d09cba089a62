package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/cmpp.go/pkg/bridge"
)

var (
	mqttURL = "mqtt://localhost:1883/cmpp/"
)

func init() {
	if val := os.Getenv("CMPP_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func decode(topic string, payload []byte) (proto.Message, error) {
	var msg proto.Message
	switch topic[strings.LastIndex(topic, "/")+1:] {
	case bridge.TopicStatus:
		msg = &bridge.StatusEvent{}
	case bridge.TopicCmd:
		msg = &bridge.Request{}
	case bridge.TopicReply:
		msg = &bridge.Reply{}
	default:
		return nil, nil
	}
	return msg, proto.Unmarshal(payload, msg)
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := bridge.NewQueueFromURL(mqttURL, "")
	if err != nil {
		log.Fatalln(err)
	}
	if err := q.Connect(); err != nil {
		log.Fatalln(err)
	}

	_, err = q.Subscribe("#", func(topic string, payload []byte) {
		msg, err := decode(topic, payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		if msg == nil {
			log.Printf("%s: %d bytes", topic, len(payload))
			return
		}
		log.Printf("%s: %s", topic, msg.String())
	})
	if err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}
