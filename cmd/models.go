package cmd

type ArgumentInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type RequestInfo struct {
	Name      string         `json:"name"`
	Operation string         `json:"operation"`
	Arguments []ArgumentInfo `json:"arguments,omitempty"`
}

type OperationInfo struct {
	Name      string `json:"name"`
	Operation string `json:"operation"`
	Query     string `json:"query"`
	Variables string `json:"variables"`
}
