package model

// AreaType is the kind of farming done in an area.
type AreaType string

const (
	AreaTypeOyster AreaType = "oyster"
	AreaTypeCobia  AreaType = "cobia"
)

// Area represents a farming area. Province and District carry the
// denormalized names the server attaches to list responses.
type Area struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	AreaType   AreaType `json:"area_type"`
	Size       float64  `json:"area"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	ProvinceID int64    `json:"province_id"`
	DistrictID *int64   `json:"district_id"`
	Province   string   `json:"province"`
	District   string   `json:"district"`
}

// Province represents an administrative province.
type Province struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// District represents an administrative district within a province.
type District struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ProvinceID int64  `json:"province_id"`
}

// DistrictsOfProvince returns the districts belonging to the given province.
// Area forms restrict the district choices with this before submitting, so a
// district can never be paired with a foreign province.
func DistrictsOfProvince(districts []District, provinceID int64) []District {
	var out []District
	for _, d := range districts {
		if d.ProvinceID == provinceID {
			out = append(out, d)
		}
	}
	return out
}
