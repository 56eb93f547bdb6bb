package valueobjects

// ContentFile is an asset embedded in one of a project's content arrays.
// Timestamps are kept as the client sent them.
type ContentFile struct {
	ID        string `json:"id" dynamodbav:"id"`
	Name      string `json:"name" dynamodbav:"name"`
	URL       string `json:"url" dynamodbav:"url"`
	Key       string `json:"key,omitempty" dynamodbav:"key,omitempty"`
	Timestamp string `json:"timestamp,omitempty" dynamodbav:"timestamp,omitempty"`
}

// Artist is a collaborator on a project
type Artist struct {
	Name  string `json:"name" dynamodbav:"name"`
	Email string `json:"email" dynamodbav:"email"`
	Phone string `json:"phone" dynamodbav:"phone"`
}

// Update is a free-text progress note
type Update struct {
	ID        string        `json:"id" dynamodbav:"id"`
	Text      string        `json:"text" dynamodbav:"text"`
	Author    string        `json:"author" dynamodbav:"author"`
	Avatar    string        `json:"avatar,omitempty" dynamodbav:"avatar,omitempty"`
	Status    ProjectStatus `json:"status,omitempty" dynamodbav:"status,omitempty"`
	Timestamp string        `json:"timestamp,omitempty" dynamodbav:"timestamp,omitempty"`
}
