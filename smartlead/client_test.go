package smartlead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateLead(t *testing.T) {
	assert.True(t, isDuplicateLead(409, []byte(`{}`)))
	assert.True(t, isDuplicateLead(400, []byte(`{"message":"Lead already exists in campaign"}`)))
	assert.True(t, isDuplicateLead(400, []byte(`{"message":"ALREADY EXISTS"}`)))

	assert.False(t, isDuplicateLead(400, []byte(`{"message":"invalid email"}`)))
	assert.False(t, isDuplicateLead(500, []byte(`not json`)))
	assert.False(t, isDuplicateLead(200, []byte(`{"lead_id":"1"}`)))
}

// Smartlead responds with lead_id or id depending on the endpoint
// version; numbers and strings both occur.
func TestExtractLeadID(t *testing.T) {
	assert.Equal(t, "123", extractLeadID([]byte(`{"lead_id":123}`)))
	assert.Equal(t, "abc", extractLeadID([]byte(`{"lead_id":"abc"}`)))
	assert.Equal(t, "456", extractLeadID([]byte(`{"id":456}`)))
	assert.Equal(t, "123", extractLeadID([]byte(`{"lead_id":123,"id":456}`)))
	assert.Equal(t, "", extractLeadID([]byte(`{}`)))
	assert.Equal(t, "", extractLeadID([]byte(`garbage`)))
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient("sk-1")
	assert.Equal(t, DefaultBaseURL, c.baseURL)

	c = NewClient("sk-1", WithBaseURL("http://localhost:9999/api/v1/"))
	assert.Equal(t, "http://localhost:9999/api/v1", c.baseURL)
}
