package sumoapi

// Divisions lists the banzuke divisions in rank order, top first.
var Divisions = []string{
	"Makuuchi",
	"Juryo",
	"Makushita",
	"Sandanme",
	"Jonidan",
	"Jonokuchi",
}

// MaxDays is the number of scheduled days in a basho.
const MaxDays = 15

// Basho is the /basho/{id} response. Date doubles as the tournament id
// in YYYYMM form; StartDate and EndDate are full timestamps.
type Basho struct {
	Date      string `json:"date"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// BanzukeSlot is one rikishi entry on a banzuke side.
type BanzukeSlot struct {
	RikishiID int    `json:"rikishiID"`
	ShikonaEn string `json:"shikonaEn"`
	Rank      string `json:"rank"`
}

// Banzuke is the /basho/{id}/banzuke/{division} response.
type Banzuke struct {
	BashoID  string        `json:"bashoId"`
	Division string        `json:"division"`
	East     []BanzukeSlot `json:"east"`
	West     []BanzukeSlot `json:"west"`
}

// Rikishi is the /rikishi/{id} response.
type Rikishi struct {
	ID        int     `json:"id"`
	ShikonaEn string  `json:"shikonaEn"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	BirthDate string  `json:"birthDate"`
	Debut     string  `json:"debut"`
}

// Measurement is one entry of the /measurements?bashoId= response.
// Height is in centimeters, weight in kilograms.
type Measurement struct {
	BashoID   string  `json:"bashoId"`
	RikishiID int     `json:"rikishiId"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
}

// Bout is one torikumi entry. WinnerID is zero while the bout has not
// been fought yet.
type Bout struct {
	ID       string `json:"id"`
	BashoID  string `json:"bashoId"`
	Division string `json:"division"`
	Day      int    `json:"day"`
	MatchNo  int    `json:"matchNo"`
	EastID   int    `json:"eastId"`
	WestID   int    `json:"westId"`
	WinnerID int    `json:"winnerId"`
	WinnerEn string `json:"winnerEn"`
	Kimarite string `json:"kimarite"`
}

// Torikumi is the /basho/{id}/torikumi/{division}/{day} response.
type Torikumi struct {
	Date     string `json:"date"`
	Torikumi []Bout `json:"torikumi"`
}
