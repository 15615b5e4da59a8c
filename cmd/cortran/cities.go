package main

import (
	"sort"

	"github.com/kdudkov/cortran/pkg/coord"
)

var cities = map[string]coord.GeodeticPoint{
	"london":  {Lat: 51.5073219, Lon: -0.1276474},
	"berlin":  {Lat: 52.5170365, Lon: 13.3888599},
	"vienna":  {Lat: 48.2083537, Lon: 16.3725042},
	"sydney":  {Lat: -33.8548157, Lon: 151.2164539},
	"madrid":  {Lat: 40.4167047, Lon: -3.7035825},
	"yerevan": {Lat: 40.1872000, Lon: 44.5152000},
	"shorzha": {Lat: 40.0718300, Lon: 45.8897700},
	"gyumri":  {Lat: 40.7929000, Lon: 43.8465000},
}

func cityNames() []string {
	res := make([]string, 0, len(cities))
	for name := range cities {
		res = append(res, name)
	}

	sort.Strings(res)

	return res
}
