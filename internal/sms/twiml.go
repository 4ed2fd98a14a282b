package sms

import "encoding/xml"

// MessagingResponse is the TwiML document returned to the provider from the
// inbound-message webhook.
type MessagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message,omitempty"`
}

// TwiML renders the webhook reply. An empty message yields a bare
// <Response></Response>, acknowledging the inbound message without replying.
func TwiML(message string) []byte {
	doc, err := xml.Marshal(MessagingResponse{Message: message})
	if err != nil {
		// Marshalling a plain string cannot fail; keep the webhook happy anyway.
		return []byte(xml.Header + "<Response></Response>")
	}
	return append([]byte(xml.Header), doc...)
}
