package api

// GraphQLRequest is the body of POST /graphql
type GraphQLRequest struct {
	Query         string         `json:"query" binding:"required"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// GraphQLError is the error entry returned when a request cannot be executed at all
type GraphQLError struct {
	Message string `json:"message"`
}

type GraphQLErrorResponse struct {
	Errors []GraphQLError `json:"errors"`
}
