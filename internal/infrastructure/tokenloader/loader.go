package tokenloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenFileLoader implements port.TokenProvider by reading <network>.json files from a directory.
type TokenFileLoader struct {
	tokenDirPath string
	logger       port.Logger
}

// NewTokenLoader creates a new TokenFileLoader.
func NewTokenLoader(tokenDirPath string, logger port.Logger) *TokenFileLoader {
	return &TokenFileLoader{
		tokenDirPath: tokenDirPath,
		logger:       logger,
	}
}

// GetTokensByNetwork scans the token directory, reads JSON files for known networks and
// returns network identifier -> tokens. A missing directory yields an empty result;
// unreadable or malformed files are skipped with a warning.
func (l *TokenFileLoader) GetTokensByNetwork(networks []entity.NetworkDefinition) (map[string][]entity.TokenInfo, error) {
	tokensByNetwork := make(map[string][]entity.TokenInfo)

	files, err := os.ReadDir(l.tokenDirPath)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Info("Token directory does not exist, no token files loaded", "path", l.tokenDirPath)
			return tokensByNetwork, nil
		}
		return nil, fmt.Errorf("failed to read token directory %s: %w", l.tokenDirPath, err)
	}

	known := make(map[string]struct{}, len(networks))
	for _, def := range networks {
		known[def.Identifier] = struct{}{}
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}

		identifier := strings.ToLower(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))
		if _, ok := known[identifier]; !ok {
			l.logger.Warn("Token file found for an unknown network, skipping", "file", file.Name(), "network", identifier)
			continue
		}

		filePath := filepath.Join(l.tokenDirPath, file.Name())
		tokens, err := LoadTokensFromJSON(filePath)
		if err != nil {
			l.logger.Warn("Failed to load token file, skipping", "path", filePath, "error", err)
			continue
		}

		valid := make([]entity.TokenInfo, 0, len(tokens))
		for _, token := range tokens {
			if token.Network != "" && !strings.EqualFold(token.Network, identifier) {
				l.logger.Warn("Token has mismatched network in file, skipping token",
					"file", filePath, "token_symbol", token.Symbol, "token_address", token.Address,
					"token_network", token.Network, "expected_network", identifier)
				continue
			}
			if strings.TrimSpace(token.Address) == "" || token.Decimals < 0 {
				l.logger.Warn("Token entry is invalid, skipping token",
					"file", filePath, "token_symbol", token.Symbol, "decimals", token.Decimals)
				continue
			}
			token.Network = identifier
			valid = append(valid, token)
		}

		if len(valid) > 0 {
			tokensByNetwork[identifier] = append(tokensByNetwork[identifier], valid...)
			l.logger.Info("Loaded tokens for network from file", "network", identifier, "file", file.Name(), "count", len(valid))
		}
	}

	return tokensByNetwork, nil
}

// LoadTokensFromJSON reads a JSON array of tokens.
func LoadTokensFromJSON(filePath string) ([]entity.TokenInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var tokens []entity.TokenInfo
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokens from %s: %w", filePath, err)
	}
	return tokens, nil
}
