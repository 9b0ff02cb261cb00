package eth

import (
	"encoding"
	"errors"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/pflag"
)

var ErrInvalidBlockNumber = errors.New(
	"invalid block number (known tags: latest, earliest, pending, finalized, safe)")

// BlockNumber selects the block a query runs against: either an
// explicit height or one of the named tags. It marshals to the wire
// form the eth namespace expects, a hex-quoted number or the tag
// verbatim.
type BlockNumber int64

// The following are necessary for Cobra and Viper, respectively, to unmarshal
// block number CLI/config parameters properly.
var (
	_ pflag.Value              = (*BlockNumber)(nil)
	_ encoding.TextUnmarshaler = (*BlockNumber)(nil)
)

const (
	Latest    BlockNumber = -1
	Earliest  BlockNumber = -2
	Pending   BlockNumber = -3
	Finalized BlockNumber = -4
	Safe      BlockNumber = -5
)

func (b BlockNumber) String() string {
	switch b {
	case Latest:
		return "latest"
	case Earliest:
		return "earliest"
	case Pending:
		return "pending"
	case Finalized:
		return "finalized"
	case Safe:
		return "safe"
	default:
		if b < 0 {
			// Should not happen.
			panic(ErrInvalidBlockNumber)
		}
		return hexutil.EncodeUint64(uint64(b))
	}
}

func (b BlockNumber) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b BlockNumber) MarshalYAML() (any, error) {
	return b.String(), nil
}

// Set accepts a tag name, a 0x-prefixed hex height or a decimal height.
func (b *BlockNumber) Set(s string) error {
	switch strings.ToLower(s) {
	case "latest":
		*b = Latest
	case "earliest":
		*b = Earliest
	case "pending":
		*b = Pending
	case "finalized":
		*b = Finalized
	case "safe":
		*b = Safe
	default:
		base := 10
		digits := s
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			base = 16
			digits = s[2:]
		}
		number, err := strconv.ParseInt(digits, base, 64)
		if err != nil || number < 0 {
			return ErrInvalidBlockNumber
		}
		*b = BlockNumber(number)
	}
	return nil
}

func (b *BlockNumber) Type() string {
	return "BlockNumber"
}

func (b *BlockNumber) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}

// IsTag reports whether the selector is a named tag rather than an
// explicit height.
func (b BlockNumber) IsTag() bool {
	return b < 0
}
