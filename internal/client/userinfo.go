package client

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/internal/http"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// UsersClient implements qb.UsersClient against the legacy XML API.
// One-shot parse, no caching or state.
type UsersClient struct {
	httpClient     *http.Client
	legacyEndpoint string
	userToken      string
}

// NewUsersClient creates a new users client. legacyEndpoint is the base
// URL of the legacy XML API (https://<realm> by default).
func NewUsersClient(httpClient *http.Client, legacyEndpoint, userToken string) *UsersClient {
	return &UsersClient{
		httpClient:     httpClient,
		legacyEndpoint: legacyEndpoint,
		userToken:      userToken,
	}
}

// userInfoRequest is the legacy request envelope.
type userInfoRequest struct {
	XMLName   xml.Name `xml:"qdbapi"`
	UserToken string   `xml:"usertoken"`
}

// userInfoResponse is the legacy response envelope.
type userInfoResponse struct {
	XMLName xml.Name `xml:"qdbapi"`
	ErrCode int      `xml:"errcode"`
	ErrText string   `xml:"errtext"`
	User    struct {
		ID           string `xml:"id,attr"`
		FirstName    string `xml:"firstName"`
		LastName     string `xml:"lastName"`
		Login        string `xml:"login"`
		Email        string `xml:"email"`
		ScreenName   string `xml:"screenName"`
		IsVerified   int    `xml:"isVerified"`
		ExternalAuth int    `xml:"externalAuth"`
	} `xml:"user"`
}

// GetUserInfo implements qb.UsersClient.GetUserInfo.
func (c *UsersClient) GetUserInfo(ctx context.Context) (*qb.UserInfo, error) {
	body, err := xml.Marshal(userInfoRequest{UserToken: c.userToken})
	if err != nil {
		return nil, fmt.Errorf("marshaling user info request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:      "POST",
		BaseURL:     c.legacyEndpoint,
		Path:        "/db/main",
		RawBody:     append([]byte(xml.Header), body...),
		ContentType: "application/xml",
		Headers: map[string]string{
			"QUICKBASE-ACTION": constants.LegacyUserInfoAction,
		},
		NoAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("getting user info: %w", err)
	}

	var parsed userInfoResponse

	err = xml.Unmarshal(resp.Body, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parsing user info response: %w", err)
	}

	if parsed.ErrCode != 0 {
		return nil, &qb.APIError{StatusCode: resp.StatusCode, Message: parsed.ErrText}
	}

	return &qb.UserInfo{
		ID:           parsed.User.ID,
		FirstName:    parsed.User.FirstName,
		LastName:     parsed.User.LastName,
		Login:        parsed.User.Login,
		Email:        parsed.User.Email,
		ScreenName:   parsed.User.ScreenName,
		IsVerified:   parsed.User.IsVerified == 1,
		ExternalAuth: parsed.User.ExternalAuth == 1,
	}, nil
}
