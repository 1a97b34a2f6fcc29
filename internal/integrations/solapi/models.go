package solapi

import "time"

// Message is one outgoing message in a batch
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Text    string `json:"text"`
	Type    string `json:"type"`
	ImageID string `json:"imageId,omitempty"`
	Subject string `json:"subject,omitempty"`
}

type sendManyRequest struct {
	Messages        []Message `json:"messages"`
	AllowDuplicates bool      `json:"allowDuplicates"`
}

type groupInfo struct {
	GroupID string `json:"groupId"`
	ID      string `json:"_id"`
	Count   *count `json:"count"`
}

type sendManyResponse struct {
	GroupID     string     `json:"groupId"`
	GroupInfo   *groupInfo `json:"groupInfo"`
	FailedCount int        `json:"failedMessageListCount"`
	FailedList  []struct {
		To            string `json:"to"`
		StatusCode    string `json:"statusCode"`
		StatusMessage string `json:"statusMessage"`
	} `json:"failedMessageList"`
}

// SendResult is the outcome of a batch registration
type SendResult struct {
	GroupID string
	// Rejected lists recipients refused at registration time
	Rejected []string
}

// count mirrors the gateway's group count object; field names vary by API version
type count struct {
	Total       *int `json:"total"`
	SentTotal   *int `json:"sentTotal"`
	SentSuccess *int `json:"sentSuccess"`
	Successful  *int `json:"successful"`
	SentFailed  *int `json:"sentFailed"`
	Failed      *int `json:"failed"`
	SentPending *int `json:"sentPending"`
	Sending     *int `json:"sending"`
}

type groupResponse struct {
	GroupID   string     `json:"groupId"`
	ID        string     `json:"_id"`
	Count     *count     `json:"count"`
	GroupInfo *groupInfo `json:"groupInfo"`
}

type uploadRequest struct {
	File string `json:"file"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

type uploadResponse struct {
	FileID string `json:"fileId"`
}

type listMessagesResponse struct {
	MessageList map[string]listedMessage `json:"messageList"`
	NextKey     *string                  `json:"nextKey"`
}

type listedMessage struct {
	MessageID   string    `json:"messageId"`
	GroupID     string    `json:"groupId"`
	To          string    `json:"to"`
	Type        string    `json:"type"`
	DateCreated time.Time `json:"dateCreated"`
}

// GroupSummary is a gateway group seen in the message list
type GroupSummary struct {
	GroupID     string
	CreatedAt   time.Time
	Recipients  int
	MessageType string
}

type errorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}
