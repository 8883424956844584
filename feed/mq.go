package feed

import (
	"context"
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQFeed consumes frames published to MQTT topics.
//
// Each message payload is one frame in the same shape WSFeed reads.
// Dispatch errors are reported through the Dispatcher's OnError hook
// (or logged); a publish handler has nowhere better to put them.
type MQFeed struct {
	Debug bool

	// QoS for subscriptions.  Defaults to zero, which is fine for a
	// cache that the next event will correct anyway.
	QoS byte

	client mqtt.Client
	d      *Dispatcher
	topics []string
}

// NewMQFeed builds a feed from client options.  The options'
// publish handler is replaced; set topic routing here, not there.
func NewMQFeed(opts *mqtt.ClientOptions, d *Dispatcher, topics ...string) *MQFeed {
	f := &MQFeed{d: d, topics: topics}
	opts.DefaultPublishHandler = func(client mqtt.Client, msg mqtt.Message) {
		f.handle(msg)
	}
	f.client = mqtt.NewClient(opts)
	return f
}

func (f *MQFeed) logf(format string, args ...interface{}) {
	if f.Debug {
		log.Printf("feed.MQFeed."+format, args...)
	}
}

func (f *MQFeed) handle(msg mqtt.Message) {
	bs := msg.Payload()
	f.logf("handle heard %s on %s", bs, msg.Topic())

	var frame Frame
	if err := json.Unmarshal(bs, &frame); err != nil {
		log.Printf("feed.MQFeed.handle bad frame %s (%v)", bs, err)
		return
	}
	// The paho callback gives us no context.  Use a background one;
	// Stop tears the subscription down, not in-flight dispatches.
	if err := f.d.Dispatch(context.Background(), frame); err != nil {
		log.Printf("feed.MQFeed.handle dispatch error %v", err)
	}
}

// Start connects and subscribes to the feed's topics.
func (f *MQFeed) Start() error {
	if t := f.client.Connect(); t.Wait() && t.Error() != nil {
		return t.Error()
	}
	for _, topic := range f.topics {
		f.logf("Start subscribing to %s", topic)
		if t := f.client.Subscribe(topic, f.QoS, nil); t.Wait() && t.Error() != nil {
			return t.Error()
		}
	}
	return nil
}

// Stop unsubscribes and disconnects.
func (f *MQFeed) Stop() error {
	for _, topic := range f.topics {
		if t := f.client.Unsubscribe(topic); t.Wait() && t.Error() != nil {
			return t.Error()
		}
	}
	f.client.Disconnect(250) // milliseconds of quiesce
	return nil
}
