package testdata

import (
	"encoding/json"
	"time"
)

// GetBeats returns the onsets detected in a short drum loop
func GetBeats() ([]time.Duration, error) {
	var seconds []float64
	if err := json.Unmarshal([]byte(data), &seconds); nil != err {
		return nil, err
	}
	beats := make([]time.Duration, len(seconds))
	for i, s := range seconds {
		beats[i] = time.Duration(s * float64(time.Second))
	}
	return beats, nil
}

const data = `[
	0.511, 0.998, 1.509, 1.997, 2.252, 2.508, 2.995, 3.506, 3.994, 4.249,
	4.505, 4.992, 5.503, 5.991, 6.246, 6.502, 6.989, 7.500, 7.988, 8.243,
	8.499, 8.986, 9.497, 9.985, 10.240, 10.496, 10.983, 11.494, 11.982, 12.237,
	12.493, 12.980, 13.491, 13.979, 14.234, 14.490, 14.977, 15.488, 15.976, 16.231
]`
