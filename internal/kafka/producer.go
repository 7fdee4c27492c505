package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{writer: writer}
}

func (p *Producer) PublishScrapeCompleted(event ScrapeCompletedEvent) error {
	event.EventType = EventScrapeCompleted

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal scrape_completed event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte("scrape_completed"),
		Value: data,
		Time:  time.Now(),
	}

	err = p.writer.WriteMessages(context.Background(), message)
	if err != nil {
		return fmt.Errorf("failed to write scrape_completed message: %w", err)
	}

	log.Printf("Published scrape_completed event: listings=%d, pages=%d", event.Listings, event.Pages)
	return nil
}

func (p *Producer) PublishNewListings(event NewListingsEvent) error {
	event.EventType = EventNewListings

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal new_listings event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte("new_listings"),
		Value: data,
		Time:  time.Now(),
	}

	err = p.writer.WriteMessages(context.Background(), message)
	if err != nil {
		return fmt.Errorf("failed to write new_listings message: %w", err)
	}

	log.Printf("Published new_listings event: count=%d", len(event.Listings))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
