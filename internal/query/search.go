package query

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Field names a FilterSet field a free-text search can land in.
type Field string

const (
	FieldTxHash  Field = "tx_hash"
	FieldAddress Field = "address"
)

// ParseSearch turns toolbar input into filters. A 32-byte hex string is a
// transaction hash, a 20-byte one an address; anything else goes to fallback.
// Blank input yields an empty FilterSet.
func ParseSearch(input string, fallback Field) FilterSet {
	s := strings.TrimSpace(input)
	if s == "" {
		return FilterSet{}
	}
	field := fallback
	switch {
	case isHexHash(s):
		field = FieldTxHash
	case common.IsHexAddress(s):
		field = FieldAddress
	}
	var f FilterSet
	if field == FieldAddress {
		f.Address = s
	} else {
		f.TxHash = s
	}
	return f
}

func isHexHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
