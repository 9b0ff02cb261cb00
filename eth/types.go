package eth

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Block mirrors the result of eth_getBlockByHash and
// eth_getBlockByNumber. Number, Hash, Nonce and Miner are nil while the
// block is pending; TotalDifficulty, BaseFeePerGas and MixHash depend
// on the fork and the node.
type Block struct {
	Number *hexutil.Big    `json:"number"`
	Hash   *common.Hash    `json:"hash"`
	Nonce  *hexutil.Bytes  `json:"nonce"`
	Miner  *common.Address `json:"miner"`

	ParentHash       common.Hash    `json:"parentHash"`
	Sha3Uncles       common.Hash    `json:"sha3Uncles"`
	LogsBloom        hexutil.Bytes  `json:"logsBloom"`
	TransactionsRoot common.Hash    `json:"transactionsRoot"`
	StateRoot        common.Hash    `json:"stateRoot"`
	ReceiptsRoot     common.Hash    `json:"receiptsRoot"`
	Difficulty       *hexutil.Big   `json:"difficulty"`
	TotalDifficulty  *hexutil.Big   `json:"totalDifficulty,omitempty"`
	ExtraData        hexutil.Bytes  `json:"extraData"`
	Size             hexutil.Uint64 `json:"size"`
	GasLimit         hexutil.Uint64 `json:"gasLimit"`
	GasUsed          hexutil.Uint64 `json:"gasUsed"`
	Timestamp        hexutil.Uint64 `json:"timestamp"`
	BaseFeePerGas    *hexutil.Big   `json:"baseFeePerGas,omitempty"`
	MixHash          *common.Hash   `json:"mixHash,omitempty"`

	Transactions BlockTransactions `json:"transactions"`
	Uncles       []common.Hash     `json:"uncles"`

	raw json.RawMessage
}

func (b *Block) UnmarshalJSON(data []byte) error {
	type block Block
	if err := json.Unmarshal(data, (*block)(b)); err != nil {
		return err
	}
	b.raw = append(b.raw[:0:0], data...)
	return nil
}

// Raw returns the exact result bytes the node sent, including any
// fields this package does not model.
func (b *Block) Raw() json.RawMessage {
	return b.raw
}

// BlockTransactions holds either transaction hashes or full transaction
// objects, depending on the flag the block was requested with.
type BlockTransactions struct {
	hashes []common.Hash
	full   []Transaction
}

func (bt *BlockTransactions) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	bt.hashes, bt.full = nil, nil
	if len(elems) == 0 {
		return nil
	}
	if bytes.HasPrefix(bytes.TrimSpace(elems[0]), []byte(`"`)) {
		return json.Unmarshal(data, &bt.hashes)
	}
	return json.Unmarshal(data, &bt.full)
}

func (bt BlockTransactions) MarshalJSON() ([]byte, error) {
	switch {
	case bt.full != nil:
		return json.Marshal(bt.full)
	case bt.hashes != nil:
		return json.Marshal(bt.hashes)
	default:
		return []byte("[]"), nil
	}
}

func (bt *BlockTransactions) Len() int {
	if bt.full != nil {
		return len(bt.full)
	}
	return len(bt.hashes)
}

// Hashes returns the transaction hashes whichever form the node sent.
func (bt *BlockTransactions) Hashes() []common.Hash {
	if bt.full == nil {
		return bt.hashes
	}
	hashes := make([]common.Hash, len(bt.full))
	for i := range bt.full {
		hashes[i] = bt.full[i].Hash
	}
	return hashes
}

// Full returns the transaction objects and reports whether the node
// sent them. It reports false when the block was requested with hashes
// only.
func (bt *BlockTransactions) Full() ([]Transaction, bool) {
	return bt.full, bt.full != nil
}

// Transaction mirrors the result of the eth_getTransactionBy* methods.
// BlockHash, BlockNumber and TransactionIndex are nil while the
// transaction is pending, To is nil for contract creations and the
// typed-transaction fields are only present where the fork defines
// them.
type Transaction struct {
	Hash     common.Hash     `json:"hash"`
	Nonce    hexutil.Uint64  `json:"nonce"`
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to"`
	Value    *hexutil.Big    `json:"value"`
	Gas      hexutil.Uint64  `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Input    hexutil.Bytes   `json:"input"`

	BlockHash        *common.Hash    `json:"blockHash"`
	BlockNumber      *hexutil.Big    `json:"blockNumber"`
	TransactionIndex *hexutil.Uint64 `json:"transactionIndex"`

	Type                 *hexutil.Uint64 `json:"type,omitempty"`
	ChainID              *hexutil.Big    `json:"chainId,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	V                    *hexutil.Big    `json:"v,omitempty"`
	R                    *hexutil.Big    `json:"r,omitempty"`
	S                    *hexutil.Big    `json:"s,omitempty"`

	raw json.RawMessage
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	type transaction Transaction
	if err := json.Unmarshal(data, (*transaction)(t)); err != nil {
		return err
	}
	t.raw = append(t.raw[:0:0], data...)
	return nil
}

// Raw returns the exact result bytes the node sent, including any
// fields this package does not model.
func (t *Transaction) Raw() json.RawMessage {
	return t.raw
}

// Receipt mirrors the result of eth_getTransactionReceipt. Status is
// nil before Byzantium, where Root carries the post-transaction state
// root instead; ContractAddress is set only for contract creations.
type Receipt struct {
	TransactionHash   common.Hash     `json:"transactionHash"`
	TransactionIndex  hexutil.Uint64  `json:"transactionIndex"`
	BlockHash         common.Hash     `json:"blockHash"`
	BlockNumber       hexutil.Big     `json:"blockNumber"`
	From              common.Address  `json:"from"`
	To                *common.Address `json:"to"`
	CumulativeGasUsed hexutil.Uint64  `json:"cumulativeGasUsed"`
	GasUsed           hexutil.Uint64  `json:"gasUsed"`
	EffectiveGasPrice *hexutil.Big    `json:"effectiveGasPrice,omitempty"`
	ContractAddress   *common.Address `json:"contractAddress"`
	Logs              []Log           `json:"logs"`
	LogsBloom         hexutil.Bytes   `json:"logsBloom"`
	Type              *hexutil.Uint64 `json:"type,omitempty"`
	Status            *hexutil.Uint64 `json:"status,omitempty"`
	Root              hexutil.Bytes   `json:"root,omitempty"`

	raw json.RawMessage
}

func (r *Receipt) UnmarshalJSON(data []byte) error {
	type receipt Receipt
	if err := json.Unmarshal(data, (*receipt)(r)); err != nil {
		return err
	}
	r.raw = append(r.raw[:0:0], data...)
	return nil
}

// Raw returns the exact result bytes the node sent, including any
// fields this package does not model.
func (r *Receipt) Raw() json.RawMessage {
	return r.raw
}

// Log is a single entry of a receipt's log list.
type Log struct {
	Address          common.Address `json:"address"`
	Topics           []common.Hash  `json:"topics"`
	Data             hexutil.Bytes  `json:"data"`
	BlockNumber      hexutil.Uint64 `json:"blockNumber"`
	TransactionHash  common.Hash    `json:"transactionHash"`
	TransactionIndex hexutil.Uint64 `json:"transactionIndex"`
	BlockHash        common.Hash    `json:"blockHash"`
	LogIndex         hexutil.Uint64 `json:"logIndex"`
	Removed          bool           `json:"removed"`
}
