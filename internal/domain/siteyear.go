package domain

// SiteYear is one survey campaign at one coastal site with its tidal datums.
type SiteYear struct {
	ID     string   `json:"id" parquet:"id"`
	Region string   `json:"region" parquet:"region"`
	Site   string   `json:"site" parquet:"site"`
	Year   string   `json:"year" parquet:"year"`
	Code   string   `json:"code" parquet:"code"`
	MHW    float64  `json:"MHW" parquet:"mhw"`
	MLW    float64  `json:"MLW" parquet:"mlw"`
	MTL    *float64 `json:"MTL" parquet:"mtl,optional"`
}

// TidalRange is the vertical distance between mean high and mean low water.
func (s SiteYear) TidalRange() float64 {
	return s.MHW - s.MLW
}

// MidTide returns MTL when the datum is published, otherwise the midpoint of
// MHW and MLW.
func (s SiteYear) MidTide() float64 {
	if s.MTL != nil {
		return *s.MTL
	}
	return (s.MHW + s.MLW) / 2
}

// MakeID builds the catalog key for a site and survey year.
func MakeID(site, year string) string {
	return site + year
}

// siteYears is the reference table. Values are transcribed from the field
// campaign configuration and must not be modified at runtime.
var siteYears = map[string]SiteYear{
	"Cedar2010": {Region: "Delmarva", Site: "Cedar", Year: "2010", Code: "cei10", MHW: 0.34, MLW: -0.56},
	"Cedar2012": {Region: "Delmarva", Site: "Cedar", Year: "2012", Code: "cei12", MHW: 0.34, MLW: -0.56},
	"Cedar2014": {Region: "Delmarva", Site: "Cedar", Year: "2014", Code: "cei14", MHW: 0.34, MLW: -0.56},
	"Smith2010": {Region: "Delmarva", Site: "Smith", Year: "2010", Code: "smi10", MHW: 0.34, MLW: -0.56},
	"Smith2012": {Region: "Delmarva", Site: "Smith", Year: "2012", Code: "smi12", MHW: 0.34, MLW: -0.56},
	"Smith2014": {Region: "Delmarva", Site: "Smith", Year: "2014", Code: "smi14", MHW: 0.34, MLW: -0.56},

	"Assateague2014":  {Region: "Delmarva", Site: "Assateague", Year: "2014", Code: "asis14", MHW: 0.34, MLW: -0.13},
	"ParkerRiver2014": {Region: "Massachusetts", Site: "ParkerRiver", Year: "2014", Code: "pr14", MHW: 1.22, MLW: -1.37},
	"Monomoy2014":     {Region: "Massachusetts", Site: "Monomoy", Year: "2014", Code: "mon14", MHW: 0.39, MLW: -0.95},
	"CoastGuard2014":  {Region: "Massachusetts", Site: "CoastGuard", Year: "2014", Code: "cg14", MHW: 0.98, MLW: -1.1},
	"Forsythe2014":    {Region: "NewJersey", Site: "Forsythe", Year: "2014", Code: "ebf14", MHW: 0.43, MLW: -0.61},
	"FireIsland2014":  {Region: "NewYork", Site: "FireIsland", Year: "2014", Code: "fi14", MHW: 0.46, MLW: -1.01},
}

func init() {
	for id, s := range siteYears {
		s.ID = id
		siteYears[id] = s
	}
	codeIndex = buildCodeIndex(siteYears)
}
