package application

import "fmt"

// Each generation call site has one fixed template. The label vocabularies
// here must stay in sync with the domain parse functions.

func classifyPrompt(text string) string {
	return fmt.Sprintf(`You are an AI assistant that classifies user requests into specific categories. Classify the following request into one of these categories:

1. CONVERSATION - general chat, questions not requiring external data
2. HOME_AUTOMATION - controlling lights, thermostats, or other smart home devices
3. EXTERNAL_API - requests for weather, stocks, news, or other external data

For the following request, respond with ONLY 'CONVERSATION', 'HOME_AUTOMATION', or 'EXTERNAL_API':
"%s"

Response:`, text)
}

func conversationPrompt(text string) string {
	return fmt.Sprintf(`You are Patriot Buddy, a friendly and helpful assistant. You should keep your responses brief and to the point.

User: %s
Patriot Buddy (in 50 words or less):`, text)
}

func lightsPrompt(text string) string {
	return fmt.Sprintf(`You are a home automation AI assistant. Based on the user's request, determine what device they want to control and the desired state.

Currently, you can only control lights (ON or OFF).

For the following request, respond with ONLY 'LIGHTS:ON', 'LIGHTS:OFF', or 'UNKNOWN':
"%s"

Response:`, text)
}

func categoryPrompt(text string) string {
	return fmt.Sprintf(`You are an AI assistant that identifies what external data a user is requesting.

1. WEATHER - requesting weather information
2. STOCKS - requesting stock market information
3. OTHER - any other external data request

For the following request, respond with ONLY 'WEATHER', 'STOCKS', or 'OTHER':
"%s"

Response:`, text)
}

// locationMarkerDefault is returned by the model when no place is named.
const locationMarkerDefault = "DEFAULT"

func locationPrompt(text string) string {
	return fmt.Sprintf(`Extract the location from the following weather request.
If no location is explicitly mentioned, respond with '%s'.
Return ONLY the location name, nothing else.

Request: "%s"

Location:`, locationMarkerDefault, text)
}

func symbolPrompt(text string) string {
	return fmt.Sprintf(`Extract the stock symbol or company name from the following stock request.
Return ONLY the stock symbol or company name, nothing else.

Request: "%s"

Stock:`, text)
}
