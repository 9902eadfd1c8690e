package domain

import "time"

// BinaryAsset is a fully materialized attachment. It lives for the duration
// of one automation run; the store of record is the asset repository.
type BinaryAsset struct {
	Name       string
	MimeType   string
	ByteLength int64
	Bytes      []byte
}

// AssetInfo is asset metadata without the payload, for listings.
type AssetInfo struct {
	ID         string
	Name       string
	MimeType   string
	ByteLength int64
	CreatedAt  time.Time
}
