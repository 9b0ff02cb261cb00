package validator

import (
	"reflect"
	"sync"

	"github.com/NethermindEth/ethrpc/eth"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Custom validation function for block selectors. It accepts the same
// tags and heights that eth.BlockNumber accepts.
func validateBlockID(fl validator.FieldLevel) bool {
	id, ok := fl.Field().Interface().(string)
	return ok && new(eth.BlockNumber).Set(id) == nil
}

// Custom validation function for 0x-prefixed 32 byte hashes
func validateHash32(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}

// Validator returns a singleton that can be used to validate various objects
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		if err := v.RegisterValidation("block_id", validateBlockID); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		if err := v.RegisterValidation("hash32", validateHash32); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		// Register these types to use their string representation for validation
		// purposes
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			switch f := field.Interface().(type) {
			case common.Address:
				return f.Hex()
			case common.Hash:
				return f.Hex()
			}
			panic("not an address or hash")
		}, common.Address{}, common.Hash{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if b, ok := field.Interface().(eth.BlockNumber); ok {
				return b.String()
			}
			panic("not a block number")
		}, eth.BlockNumber(0))
	})
	return v
}
