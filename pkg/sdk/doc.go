// Package sdk provides a Go client for the SatyaDrishti HTTP API.
//
// The client wraps the four service endpoints with typed requests and
// responses:
//
//	client, _ := sdk.New("http://localhost:8080",
//	    sdk.WithAPIKey("secret"),
//	)
//	resp, err := client.Search(ctx, sdk.SearchRequest{
//	    Query: "earthquake shelter near me",
//	})
//	for _, r := range resp.Results {
//	    fmt.Println(r.Badge, r.Title, r.Link)
//	}
//
// Feedback closes the ranking loop:
//
//	client.Feedback(ctx, sdk.FeedbackRequest{
//	    Action:    sdk.ActionClick,
//	    URL:       resp.Results[0].Link,
//	    SessionID: resp.SessionID,
//	})
//
// API failures come back as *APIError carrying the HTTP status and
// the server's error code; well-known codes additionally match the
// package sentinels via errors.Is.
package sdk
