package orchestrators

import (
	"context"
	"errors"
	"fmt"

	"clipshelf/internal/domain/clipboard"
)

// ItemReader loads a single item.
type ItemReader interface {
	Get(ctx context.Context, id string) (clipboard.Item, error)
}

// ContentOpener decrypts sealed item content.
type ContentOpener interface {
	Open(sealed string) (string, error)
}

// RevealItemDeps holds dependencies for RevealItem.
type RevealItemDeps struct {
	Reader ItemReader
	Opener ContentOpener // required only for encrypted items
}

// ExecuteRevealItem returns an item with its content in plaintext.
// PRE: id is non-empty
// POST: encrypted items come back with IsEncrypted still set and Content opened
func ExecuteRevealItem(ctx context.Context, id string, deps RevealItemDeps) (clipboard.Item, error) {
	if id == "" {
		return clipboard.Item{}, errors.New("item ID is required")
	}

	it, err := deps.Reader.Get(ctx, id)
	if err != nil {
		return clipboard.Item{}, err
	}
	if !it.IsEncrypted {
		return it, nil
	}
	if deps.Opener == nil {
		return clipboard.Item{}, ErrSealerRequired
	}

	plain, err := deps.Opener.Open(it.Content)
	if err != nil {
		return clipboard.Item{}, fmt.Errorf("open item %s: %w", id, err)
	}
	it.Content = plain
	return it, nil
}
