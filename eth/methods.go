package eth

// Method names of the eth namespace wrapped by Client. Requests are
// built from these constants only, so the names cannot drift between
// facades.
const (
	MethodCoinbase                            = "eth_coinbase"
	MethodGasPrice                            = "eth_gasPrice"
	MethodAccounts                            = "eth_accounts"
	MethodBlockNumber                         = "eth_blockNumber"
	MethodGetBalance                          = "eth_getBalance"
	MethodGetStorageAt                        = "eth_getStorageAt"
	MethodGetTransactionCount                 = "eth_getTransactionCount"
	MethodGetBlockTransactionCountByHash      = "eth_getBlockTransactionCountByHash"
	MethodGetBlockTransactionCountByNumber    = "eth_getBlockTransactionCountByNumber"
	MethodGetCode                             = "eth_getCode"
	MethodGetBlockByHash                      = "eth_getBlockByHash"
	MethodGetBlockByNumber                    = "eth_getBlockByNumber"
	MethodGetTransactionByHash                = "eth_getTransactionByHash"
	MethodGetTransactionByBlockHashAndIndex   = "eth_getTransactionByBlockHashAndIndex"
	MethodGetTransactionByBlockNumberAndIndex = "eth_getTransactionByBlockNumberAndIndex"
	MethodGetTransactionReceipt               = "eth_getTransactionReceipt"
)

// Methods maps every wrapped method to the number of positional
// parameters it takes on the wire.
func Methods() map[string]int {
	return map[string]int{
		MethodCoinbase:                            0,
		MethodGasPrice:                            0,
		MethodAccounts:                            0,
		MethodBlockNumber:                         0,
		MethodGetBalance:                          2,
		MethodGetStorageAt:                        3,
		MethodGetTransactionCount:                 2,
		MethodGetBlockTransactionCountByHash:      1,
		MethodGetBlockTransactionCountByNumber:    1,
		MethodGetCode:                             2,
		MethodGetBlockByHash:                      2,
		MethodGetBlockByNumber:                    2,
		MethodGetTransactionByHash:                1,
		MethodGetTransactionByBlockHashAndIndex:   2,
		MethodGetTransactionByBlockNumberAndIndex: 2,
		MethodGetTransactionReceipt:               1,
	}
}
