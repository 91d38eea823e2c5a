package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scashdap/v1/internal/config/network"
	"github.com/scashdap/v1/internal/core/dap"
	"github.com/scashdap/v1/pkg/types"
)

const testTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(rpcURL string, cacheDisabled bool) *types.AppConfig {
	return &types.AppConfig{
		API: &types.UserAPIConfig{Listen: types.StringPtr("127.0.0.1:0")},
		RPC: &types.UserRPCConfig{
			URL:  types.StringPtr(rpcURL),
			User: types.StringPtr("scash"),
			Pass: types.StringPtr("scash"),
		},
		Cache: &types.UserCacheConfig{Disabled: types.BoolPtr(cacheDisabled)},
		Log:   &types.UserLogConfig{Level: types.StringPtr("error")},
	}
}

func getJSON(t *testing.T, url string, v interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if v != nil {
		require.NoError(t, json.Unmarshal(body, v), string(body))
	}
	return resp.StatusCode
}

func TestStartWithoutNode(t *testing.T) {
	a, err := Start(WithAppConfig(testConfig("http://127.0.0.1:1", true)), WithoutNode())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Stop()) }()
	require.NotEmpty(t, a.Addr())

	var health struct {
		Status  string `json:"status"`
		Network string `json:"network"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, "http://"+a.Addr()+"/health", &health))
	assert.Equal(t, "mainnet", health.Network)
	assert.Equal(t, "degraded", health.Status)

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, "http://"+a.Addr()+"/api/v1/dap/tx/"+testTxID, nil))
}

func TestStartReadsTransactionThroughNode(t *testing.T) {
	codec, err := dap.NewFromConfig(network.MustGet(network.Regtest), nil, nil)
	require.NoError(t, err)
	outputs, err := codec.Encode("Hello Scash DAP")
	require.NoError(t, err)

	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     uint64 `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		vout := make([]map[string]interface{}, 0, len(outputs))
		for i, out := range outputs {
			vout = append(vout, map[string]interface{}{
				"value":        0.00000546,
				"n":            i,
				"scriptPubKey": map[string]interface{}{"address": out.Address},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]interface{}{"txid": testTxID, "vout": vout, "confirmations": 6},
		})
	}))
	defer node.Close()

	for _, cacheDisabled := range []bool{true, false} {
		a, err := Start(WithAppConfig(testConfig(node.URL, cacheDisabled)), WithNetwork(network.Regtest))
		require.NoError(t, err)

		var resp struct {
			Data struct {
				Text          string `json:"text"`
				Found         bool   `json:"found"`
				Confirmations int64  `json:"confirmations"`
			} `json:"data"`
		}
		assert.Equal(t, http.StatusOK, getJSON(t, "http://"+a.Addr()+"/api/v1/dap/tx/"+testTxID, &resp))
		assert.Equal(t, "Hello Scash DAP", resp.Data.Text)
		assert.True(t, resp.Data.Found)
		assert.Equal(t, int64(6), resp.Data.Confirmations)

		require.NoError(t, a.Stop())
	}
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1", true)
	cfg.Network = types.StringPtr("moonnet")
	_, err := Start(WithAppConfig(cfg))
	assert.Error(t, err)

	_, err = Start(WithConfigFile("/nonexistent/scashdap.json"))
	assert.Error(t, err)
}
