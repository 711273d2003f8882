package interfaces

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for authenticated HTTP requests.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a GET request to the specified URL with query parameters.
	// Returns the response body as bytes or an error; upstream auth
	// rejections and transport failures come back as distinct error types.
	Get(url string, params map[string]string) ([]byte, error)
}
