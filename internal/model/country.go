package model

// Country is the subset of country data the registry relies on
type Country struct {
	Code            int16    `json:"code" msgpack:"code"`
	Name            string   `json:"name" msgpack:"name"`
	CallingRoot     string   `json:"callingRoot" msgpack:"callingRoot"`
	CallingSuffixes []string `json:"callingSuffixes" msgpack:"callingSuffixes"`
	Demonym         string   `json:"demonym" msgpack:"demonym"`
}
