package id

import (
	"crypto/md5"
	"io"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// GenTraceID random trace id for a transfer
func GenTraceID() string {
	return foxuuid.New()
}

// UUIDFromString deterministic uuid derived from the input, used to make
// repeated settlement attempts idempotent at the transfer boundary
func UUIDFromString(s string) string {
	h := md5.New()
	io.WriteString(h, s)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	u, err := uuid.FromBytes(sum)
	if err != nil {
		return foxuuid.New()
	}
	return u.String()
}
