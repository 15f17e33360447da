package tmdb

// mediaResult is a movie, series or person entry as returned by list and search endpoints
type mediaResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	BackdropPath string  `json:"backdrop_path"`
	PosterPath   string  `json:"poster_path"`
	MediaType    string  `json:"media_type"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
}

// listResponse wraps discovery, trending, top-rated and search responses
type listResponse struct {
	Page         int           `json:"page"`
	Results      []mediaResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// videoResult is one entry of the /{kind}/{id}/videos listing
type videoResult struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videosResponse struct {
	ID      int           `json:"id"`
	Results []videoResult `json:"results"`
}

// errorResponse is the body TMDB sends alongside non-200 statuses
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
