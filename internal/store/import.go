package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/ledge/internal/log"
)

// ImportFile is the YAML layout accepted by Import.
//
//	channels:
//	  - name: music
//	    topic: things worth hearing
//	    messages:
//	      - author: ana
//	        content: new single
//	        at: 2025-03-01T18:00:00Z
//	        embeds:
//	          - url: https://www.youtube.com/watch?v=dQw4w9WgXcQ
type ImportFile struct {
	Channels []ImportChannel `yaml:"channels"`
}

// ImportChannel is one channel in an ImportFile.
type ImportChannel struct {
	Name     string          `yaml:"name"`
	Topic    string          `yaml:"topic"`
	Messages []ImportMessage `yaml:"messages"`
}

// ImportMessage is one message in an ImportChannel.
type ImportMessage struct {
	Author  string        `yaml:"author"`
	Content string        `yaml:"content"`
	At      time.Time     `yaml:"at"`
	Embeds  []ImportEmbed `yaml:"embeds"`
}

// ImportEmbed is one embed in an ImportMessage.
type ImportEmbed struct {
	URL   string `yaml:"url"`
	Title string `yaml:"title"`
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	ChannelsCreated int
	Messages        int
}

// Import reads an ImportFile from r. Channels are matched by name and created
// when missing; messages are always appended.
func (d *DB) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var file ImportFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return ImportResult{}, fmt.Errorf("parsing import: %w", err)
	}

	var res ImportResult
	for _, ic := range file.Channels {
		ch, err := d.Channel(ctx, ic.Name)
		if errors.Is(err, ErrChannelNotFound) {
			ch, err = d.CreateChannel(ctx, ic.Name, ic.Topic)
			if err == nil {
				res.ChannelsCreated++
			}
		}
		if err != nil {
			return res, fmt.Errorf("importing channel %q: %w", ic.Name, err)
		}

		for _, im := range ic.Messages {
			msg := Message{
				ChannelID: ch.ID,
				Author:    im.Author,
				Content:   im.Content,
				CreatedAt: im.At,
			}
			for _, e := range im.Embeds {
				msg.Embeds = append(msg.Embeds, Embed(e))
			}
			if _, err := d.AddMessage(ctx, msg); err != nil {
				return res, fmt.Errorf("importing message into %q: %w", ic.Name, err)
			}
			res.Messages++
		}
	}

	log.Info(log.CatStore, "Imported messages", "channels_created", res.ChannelsCreated, "messages", res.Messages)
	return res, nil
}
