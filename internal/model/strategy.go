package model

// StrategyInfo describes a registered strategy and its resolved parameters
type StrategyInfo struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  map[string]float64 `json:"parameters"`
}

// StrategyRunRequest represents a request to evaluate a strategy over a
// symbol and date range without simulating trades
type StrategyRunRequest struct {
	Symbol     string             `json:"symbol" binding:"required"`
	StartDate  string             `json:"start_date" binding:"required"`
	EndDate    string             `json:"end_date" binding:"required"`
	Timeframe  string             `json:"timeframe" binding:"omitempty,timeframe"`
	Parameters map[string]float64 `json:"parameters"`
}

// LoginRequest represents dashboard login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
