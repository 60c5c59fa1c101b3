package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case PlayerList:
		o.printPlayerList(v)
	case Location:
		fmt.Fprintf(o.w, "Location: %s\n", v.Location)
	case Locations:
		o.printLocations(v)
	case Credentials:
		o.printCredentials(v)
	case Suggestions:
		for _, s := range v {
			fmt.Fprintln(o.w, s)
		}
	case TokenResult:
		fmt.Fprintln(o.w, v.Token)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
		if v.Events != "" {
			fmt.Fprintf(o.w, "Events: %s\n", v.Events)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID            string       `json:"_id"`
	Revision      string       `json:"_rev,omitempty"`
	Name          string       `json:"name"`
	FavoriteColor string       `json:"favoriteColor"`
	Location      Location     `json:"location"`
	Credentials   *Credentials `json:"credentials"`
}

// PlayerList is a list of players
type PlayerList []Player

// Location response type
type Location struct {
	Location string `json:"location"`
}

// Locations maps player ids to locations
type Locations map[string]string

// Credentials response type
type Credentials struct {
	SharedSecret *string `json:"sharedSecret"`
	Email        *string `json:"email"`
}

// Suggestions is a list of suggested names or colors
type Suggestions []string

// TokenResult holds a minted token
type TokenResult struct {
	Token string `json:"token"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Events string `json:"events,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(o.w, "Revision: %s\n", p.Revision)
	fmt.Fprintf(o.w, "Favorite Color: %s\n", p.FavoriteColor)
	fmt.Fprintf(o.w, "Location: %s\n", p.Location.Location)
	if p.Credentials != nil {
		o.printCredentials(*p.Credentials)
	}
}

func (o *Output) printPlayerList(players PlayerList) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}
	for _, p := range players {
		fmt.Fprintf(o.w, "  - %s (%s) at %s\n", p.Name, p.ID, p.Location.Location)
	}
}

func (o *Output) printLocations(l Locations) {
	ids := make([]string, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(o.w, "%s: %s\n", id, l[id])
	}
}

func (o *Output) printCredentials(c Credentials) {
	fmt.Fprintf(o.w, "Shared Secret: %s\n", deref(c.SharedSecret))
	fmt.Fprintf(o.w, "Email: %s\n", deref(c.Email))
}
