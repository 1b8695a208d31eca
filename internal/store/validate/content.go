package validate

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lumenview/lumen/internal/model"
)

// Content normalizes and validates a content record. Exactly one payload
// variant must be populated, and it must be the one selected by the type tag.
func Content(c model.Content) (model.Content, error) {
	if c.Tags == nil {
		c.Tags = []string{}
	}

	if err := validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Type, validation.Required, in(model.ContentTypes)),
		validation.Field(&c.CreatedAt, validation.Required),
		validation.Field(&c.UpdatedAt, validation.Required),
	); err != nil {
		return model.Content{}, wrap("content", err)
	}

	if err := contentPayload(c); err != nil {
		return model.Content{}, wrap("content", err)
	}
	return c, nil
}

// contentPayload enforces the tagged-union invariant with an exhaustive
// switch, so adding a content kind is a compile-surfaced change here.
func contentPayload(c model.Content) error {
	populated := 0
	for _, set := range []bool{c.File != nil, c.URL != nil, c.Text != nil, c.Weather != nil, c.CSV != nil} {
		if set {
			populated++
		}
	}
	if populated != 1 {
		return fmt.Errorf("payload: exactly one variant must be set, got %d", populated)
	}

	switch c.Type {
	case model.ContentVideo, model.ContentImage:
		if c.File == nil {
			return fmt.Errorf("payload: type %q requires file info", c.Type)
		}
		return validation.ValidateStruct(c.File,
			validation.Field(&c.File.StoragePath, validation.Required),
			validation.Field(&c.File.MimeType, validation.Required),
			validation.Field(&c.File.Size, validation.Min(0)),
		)
	case model.ContentURL, model.ContentYouTube:
		if c.URL == nil {
			return fmt.Errorf("payload: type %q requires url info", c.Type)
		}
		return validation.ValidateStruct(c.URL,
			validation.Field(&c.URL.URL, validation.Required),
		)
	case model.ContentText:
		if c.Text == nil {
			return errors.New("payload: type \"text\" requires text info")
		}
		return validation.ValidateStruct(c.Text,
			validation.Field(&c.Text.Text, validation.Required),
		)
	case model.ContentWeather:
		if c.Weather == nil {
			return errors.New("payload: type \"weather\" requires weather info")
		}
		return validation.ValidateStruct(c.Weather,
			validation.Field(&c.Weather.Location, validation.Required),
		)
	case model.ContentCSV:
		if c.CSV == nil {
			return errors.New("payload: type \"csv\" requires csv info")
		}
		return validation.ValidateStruct(c.CSV,
			validation.Field(&c.CSV.Source, validation.Required),
		)
	default:
		return fmt.Errorf("payload: unknown content type %q", c.Type)
	}
}
