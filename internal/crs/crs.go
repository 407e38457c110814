// Package crs maps EPSG codes to PROJ definitions and builds the PROJ
// pipelines that convert coordinates between them.
package crs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownEPSG indicates an EPSG code outside the registry.
var ErrUnknownEPSG = errors.New("unknown EPSG code")

// CRS is a coordinate reference system known by its EPSG code.
type CRS struct {
	EPSG int
	Name string

	// Proj is the PROJ operation of the CRS relative to geographic
	// coordinates on Ellps, without datum information.
	Proj string

	// Ellps is the PROJ ellipsoid name.
	Ellps string

	// ToWGS84 holds the 3 or 7 Helmert parameters (position vector
	// convention: metres, arc-seconds, ppm) to WGS 84. Nil for WGS 84
	// and datums treated as coincident with it.
	ToWGS84 []float64

	// Geographic is true for longitude/latitude systems in degrees.
	Geographic bool
}

func (c CRS) String() string {
	return fmt.Sprintf("EPSG:%d (%s)", c.EPSG, c.Name)
}

type datum struct {
	name    string
	ellps   string
	towgs84 []float64
}

var (
	wgs84  = datum{name: "WGS 84", ellps: "WGS84"}
	ed50   = datum{name: "ED50", ellps: "intl", towgs84: []float64{-87, -98, -121}}
	etrs89 = datum{name: "ETRS89", ellps: "GRS80"}
	nad83  = datum{name: "NAD83", ellps: "GRS80"}
	osgb36 = datum{name: "OSGB 1936", ellps: "airy", towgs84: []float64{446.448, -125.157, 542.06, 0.15, 0.247, 0.842, -20.489}}
)

// fixed lists the systems that do not follow a UTM numbering scheme.
var fixed = map[int]CRS{
	4326: geographic(4326, wgs84),
	4230: geographic(4230, ed50),
	4258: geographic(4258, etrs89),
	4269: geographic(4269, nad83),
	4277: geographic(4277, osgb36),
	3857: {
		EPSG:  3857,
		Name:  "WGS 84 / Pseudo-Mercator",
		Proj:  "+proj=webmerc +lat_0=0 +lon_0=0 +x_0=0 +y_0=0",
		Ellps: wgs84.ellps,
	},
	27700: {
		EPSG:    27700,
		Name:    "OSGB 1936 / British National Grid",
		Proj:    "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000",
		Ellps:   osgb36.ellps,
		ToWGS84: osgb36.towgs84,
	},
	2154: {
		EPSG:  2154,
		Name:  "RGF93 v1 / Lambert-93",
		Proj:  "+proj=lcc +lat_0=46.5 +lon_0=3 +lat_1=49 +lat_2=44 +x_0=700000 +y_0=6600000",
		Ellps: "GRS80",
	},
}

// utm lists the EPSG ranges of UTM zone families: code = base + zone.
var utm = []struct {
	base     int
	from, to int
	datum    datum
	south    bool
}{
	{base: 32600, from: 1, to: 60, datum: wgs84},
	{base: 32700, from: 1, to: 60, datum: wgs84, south: true},
	{base: 23000, from: 28, to: 38, datum: ed50},
	{base: 25800, from: 28, to: 38, datum: etrs89},
	{base: 26900, from: 1, to: 23, datum: nad83},
}

func geographic(code int, d datum) CRS {
	return CRS{
		EPSG:       code,
		Name:       d.name,
		Ellps:      d.ellps,
		ToWGS84:    d.towgs84,
		Geographic: true,
	}
}

// Lookup returns the CRS registered for an EPSG code.
func Lookup(code int) (CRS, error) {
	if c, ok := fixed[code]; ok {
		return c, nil
	}
	for _, family := range utm {
		zone := code - family.base
		if zone < family.from || zone > family.to {
			continue
		}
		hemisphere, proj := "N", fmt.Sprintf("+proj=utm +zone=%d", zone)
		if family.south {
			hemisphere, proj = "S", proj+" +south"
		}
		return CRS{
			EPSG:    code,
			Name:    fmt.Sprintf("%s / UTM zone %d%s", family.datum.name, zone, hemisphere),
			Proj:    proj,
			Ellps:   family.datum.ellps,
			ToWGS84: family.datum.towgs84,
		}, nil
	}
	return CRS{}, fmt.Errorf("%w: %d", ErrUnknownEPSG, code)
}

// Pipeline returns the PROJ pipeline definition converting source coordinates to target.
//
// Coordinates are easting/northing for projected systems and
// longitude/latitude in degrees for geographic ones. A Helmert datum shift
// through geocentric coordinates is inserted when the two systems do not
// share an ellipsoid and WGS 84 parameters.
func Pipeline(source, target CRS) string {
	steps := []string{"+proj=pipeline"}

	if source.Geographic {
		steps = append(steps, "+step +proj=unitconvert +xy_in=deg +xy_out=rad")
	} else {
		steps = append(steps, "+step +inv "+source.Proj+" +ellps="+source.Ellps)
	}

	if !sameDatum(source, target) {
		steps = append(steps, "+step +proj=cart +ellps="+source.Ellps)
		if h := helmert(source.ToWGS84); h != "" {
			steps = append(steps, "+step "+h)
		}
		if h := helmert(target.ToWGS84); h != "" {
			steps = append(steps, "+step +inv "+h)
		}
		steps = append(steps, "+step +inv +proj=cart +ellps="+target.Ellps)
	}

	if target.Geographic {
		steps = append(steps, "+step +proj=unitconvert +xy_in=rad +xy_out=deg")
	} else {
		steps = append(steps, "+step "+target.Proj+" +ellps="+target.Ellps)
	}

	return strings.Join(steps, " ")
}

func sameDatum(a, b CRS) bool {
	if a.Ellps != b.Ellps || len(a.ToWGS84) != len(b.ToWGS84) {
		return false
	}
	for i := range a.ToWGS84 {
		if a.ToWGS84[i] != b.ToWGS84[i] {
			return false
		}
	}
	return true
}

func helmert(p []float64) string {
	names := []string{"x", "y", "z", "rx", "ry", "rz", "s"}
	if len(p) != 3 && len(p) != 7 {
		return ""
	}
	parts := []string{"+proj=helmert"}
	for i, v := range p {
		parts = append(parts, "+"+names[i]+"="+strconv.FormatFloat(v, 'f', -1, 64))
	}
	if len(p) == 7 {
		parts = append(parts, "+convention=position_vector")
	}
	return strings.Join(parts, " ")
}
