package pokeapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// ReadSprite returns a reader over the image at url. Downloads are cached by
// url; every call gets its own reader positioned at the start.
func (c *Client) ReadSprite(ctx context.Context, url string) (*bytes.Reader, error) {
	data, err := c.sprite(ctx, url)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// SaveSprite copies the image at url into w and returns the bytes written.
func (c *Client) SaveSprite(ctx context.Context, url string, w io.Writer) (int64, error) {
	r, err := c.ReadSprite(ctx, url)
	if err != nil {
		return 0, err
	}
	return io.Copy(w, r)
}

func (c *Client) sprite(ctx context.Context, url string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	if url == "" {
		return nil, fmt.Errorf("%w: sprite has no url", ErrInvalidArgument)
	}

	if data, ok := c.sprites.Get(url); ok {
		return data, nil
	}

	v, _, err := c.share(ctx, "sprite/"+url, func(ctx context.Context) (any, error) {
		if data, ok := c.sprites.Get(url); ok {
			return data, nil
		}
		data, err := c.http.download(ctx, url)
		if err != nil {
			return nil, err
		}
		c.sprites.Put(url, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
