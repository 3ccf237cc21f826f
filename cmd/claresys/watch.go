package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"claresys/internal/realtime"
)

const connectTimeout = 10 * time.Second

// watchCommand streams realtime events to stdout until interrupted. Each
// flag adds one scoped subscription; all of them are released on exit.
func (a *app) watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "follow realtime booking events",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "classroom", Usage: "watch bookings for a classroom"},
			&cli.StringSliceFlag{Name: "booking", Usage: "watch status changes for a booking"},
			&cli.BoolFlag{Name: "notifications", Usage: "watch notifications for the logged-in user"},
			&cli.StringSliceFlag{Name: "event", Usage: "watch a system event type"},
		},
		Action: a.watch,
	}
}

func (a *app) watch(c *cli.Context) error {
	bridge := realtime.New(realtime.Config{
		BrokerURL:         a.cfg.MQTTURL,
		ClientID:          ServiceName + "-" + uuid.New().String()[:8],
		TopicPrefix:       a.cfg.MQTTTopicPrefix,
		KeepAlive:         a.cfg.MQTTKeepAlive,
		ReconnectInterval: a.cfg.MQTTReconnect,
	}, a.cfg.Log)
	defer bridge.Close()

	connectCtx, cancel := context.WithTimeout(c.Context, connectTimeout)
	defer cancel()
	if err := bridge.Connect(connectCtx); err != nil {
		return err
	}

	topics := a.watchTopics(c, bridge.Prefix())
	if len(topics) == 0 {
		return fmt.Errorf("nothing to watch, pass --classroom, --booking, --notifications or --event")
	}

	handler := func(topic string, env realtime.Envelope) {
		fmt.Printf("[%s] %s %s %s\n", env.OccurredAt, topic, env.Event, string(env.Data))
	}

	subs := make([]*realtime.Subscription, 0, len(topics))
	defer func() {
		for _, sub := range subs {
			if err := sub.Close(); err != nil {
				a.cfg.Log.Warn("Failed to release subscription", "topic", sub.Topic(), "error", err)
			}
		}
	}()

	for _, topic := range topics {
		sub, err := bridge.Subscribe(topic, handler)
		if err != nil {
			return err
		}
		subs = append(subs, sub)
		fmt.Printf("Watching %s\n", topic)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case <-c.Context.Done():
	}
	return nil
}

func (a *app) watchTopics(c *cli.Context, prefix string) []string {
	var topics []string
	for _, id := range c.StringSlice("classroom") {
		topics = append(topics, realtime.ClassroomBookingsTopic(prefix, id))
	}
	for _, id := range c.StringSlice("booking") {
		topics = append(topics, realtime.BookingStatusTopic(prefix, id))
	}
	if c.Bool("notifications") && a.sess.UserID() != "" {
		topics = append(topics, realtime.UserNotificationsTopic(prefix, a.sess.UserID()))
	}
	for _, eventType := range c.StringSlice("event") {
		topics = append(topics, realtime.EventsTopic(prefix, eventType))
	}
	return topics
}
