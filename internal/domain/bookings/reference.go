package bookings

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidReference = errors.New("invalid booking reference")

// ReferenceCodec turns booking IDs into short receipt codes and back.
type ReferenceCodec struct {
	h *hashids.HashID
}

func NewReferenceCodec(salt string) (*ReferenceCodec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 6
	hd.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("init reference codec: %w", err)
	}
	return &ReferenceCodec{h: h}, nil
}

func (c *ReferenceCodec) Encode(id int64) string {
	ref, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return ""
	}
	return ref
}

func (c *ReferenceCodec) Decode(ref string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(ref)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidReference
	}
	return ids[0], nil
}
