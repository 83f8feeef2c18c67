// Package rss maintains the podcast feed document: an RSS 2.0 channel with
// the itunes extension, one item per episode, persisted as an XML file with
// stable two-space indentation.
package rss

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"
)

const itunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// Feed is the marshal-side feed document. Element order matches what podcast
// directories expect.
type Feed struct {
	XMLName  xml.Name `xml:"rss"`
	Version  string   `xml:"version,attr"`
	ITunesNS string   `xml:"xmlns:itunes,attr"`
	Channel  Channel  `xml:"channel"`
}

// Channel is the podcast-level metadata plus its episode items.
type Channel struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	Language    string     `xml:"language"`
	Author      string     `xml:"itunes:author,omitempty"`
	Description string     `xml:"description"`
	Image       *Image     `xml:"itunes:image,omitempty"`
	Explicit    string     `xml:"itunes:explicit,omitempty"`
	Categories  []Category `xml:"itunes:category,omitempty"`
	Items       []Item     `xml:"item"`
}

// Item is one published episode.
type Item struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Enclosure   Enclosure `xml:"enclosure"`
	GUID        string    `xml:"guid"`
	PubDate     string    `xml:"pubDate"`
	Duration    string    `xml:"itunes:duration,omitempty"`
}

// Enclosure points at the episode audio.
type Enclosure struct {
	URL    string `xml:"url,attr"`
	Length int    `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// Image is the itunes artwork reference.
type Image struct {
	Href string `xml:"href,attr"`
}

// Category is an itunes category tag.
type Category struct {
	Text string `xml:"text,attr"`
}

// NewFeed creates an empty feed with the standard channel metadata.
func NewFeed(title, link, description, imageURL string) *Feed {
	return &Feed{
		Version:  "2.0",
		ITunesNS: itunesNS,
		Channel: Channel{
			Title:       title,
			Link:        link,
			Language:    "en-us",
			Author:      title,
			Description: description,
			Image:       &Image{Href: imageURL},
			Explicit:    "false",
			Categories:  []Category{{Text: "Technology"}, {Text: "News"}},
		},
	}
}

// EpisodeMeta carries everything needed to append one episode item.
type EpisodeMeta struct {
	Title       string // Empty selects the date-based fallback
	ShortTitle  string // Podcast short title used by the fallback
	Description string
	AudioURL    string
	AudioSize   int
	Duration    string
	Date        time.Time
	GUIDPrefix  string // e.g. "daily-ai" or "weekly-ai-intelligence"
}

// AppendEpisode adds an episode item to the channel. The guid is
// deterministic per prefix and date, which is what makes reruns of the same
// day detectable by Dedupe.
func (f *Feed) AppendEpisode(m EpisodeMeta) {
	title := m.Title
	if title == "" {
		title = fmt.Sprintf("%s Summary - %s", m.ShortTitle, m.Date.Format("January 2, 2006"))
	}

	f.Channel.Items = append(f.Channel.Items, Item{
		Title:       title,
		Description: m.Description,
		Enclosure:   Enclosure{URL: m.AudioURL, Length: m.AudioSize, Type: "audio/mpeg"},
		GUID:        fmt.Sprintf("%s-%s", m.GUIDPrefix, m.Date.Format("20060102")),
		PubDate:     m.Date.Format("Mon, 02 Jan 2006 15:04:05 +0000"),
		Duration:    m.Duration,
	})
}

// Save writes the feed with an XML declaration and two-space indentation.
func Save(path string, f *Feed) error {
	body, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feed: %w", err)
	}
	data := append([]byte(xml.Header), body...)
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write feed %s: %w", path, err)
	}
	return nil
}

// Decode-side twins. The itunes-prefixed elements decode under their local
// names once the parser resolves the namespace, so loading needs tags
// without the prefix; the exported types keep the prefixed tags so marshal
// output stays directory-friendly.
type feedIn struct {
	Version string    `xml:"version,attr"`
	Channel channelIn `xml:"channel"`
}

type channelIn struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	Language    string     `xml:"language"`
	Author      string     `xml:"author"`
	Description string     `xml:"description"`
	Image       *Image     `xml:"image"`
	Explicit    string     `xml:"explicit"`
	Categories  []Category `xml:"category"`
	Items       []itemIn   `xml:"item"`
}

type itemIn struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Enclosure   Enclosure `xml:"enclosure"`
	GUID        string    `xml:"guid"`
	PubDate     string    `xml:"pubDate"`
	Duration    string    `xml:"duration"`
}

// Load reads a feed file. A missing file returns (nil, nil) so callers can
// create a fresh feed.
func Load(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", path, err)
	}

	var in feedIn
	if err := xml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", path, err)
	}

	f := &Feed{
		Version:  in.Version,
		ITunesNS: itunesNS,
		Channel: Channel{
			Title:       in.Channel.Title,
			Link:        in.Channel.Link,
			Language:    in.Channel.Language,
			Author:      in.Channel.Author,
			Description: in.Channel.Description,
			Image:       in.Channel.Image,
			Explicit:    in.Channel.Explicit,
			Categories:  in.Channel.Categories,
		},
	}
	if f.Version == "" {
		f.Version = "2.0"
	}
	for _, it := range in.Channel.Items {
		f.Channel.Items = append(f.Channel.Items, Item{
			Title:       it.Title,
			Description: it.Description,
			Enclosure:   it.Enclosure,
			GUID:        it.GUID,
			PubDate:     it.PubDate,
			Duration:    it.Duration,
		})
	}
	return f, nil
}
