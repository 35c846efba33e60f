package cli

import (
	"bufio"
	"crimestats/internal/engine"
	"crimestats/internal/models"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/gommon/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// menuOrder is the category order used for both the highest (B-J) and
// lowest (K-T) blocks.
var menuOrder = []models.Category{
	models.Murder,
	models.Robbery,
	models.ViolentCrime,
	models.Rape,
	models.Assault,
	models.PropertyCrime,
	models.Burglary,
	models.Theft,
	models.VehicleTheft,
}

var (
	highKeys = []byte("BCDEFGHIJ")
	lowKeys  = []byte("KLMNOPRST") // Q is quit
)

type action struct {
	category models.Category
	highest  bool
}

// Menu is the interactive text front end over a loaded store.
type Menu struct {
	store   *engine.Store
	in      *bufio.Reader
	out     io.Writer
	color   *color.Color
	printer *message.Printer
	actions map[byte]action
}

func NewMenu(store *engine.Store, in io.Reader, out io.Writer, useColor bool) *Menu {
	c := color.New()
	if useColor {
		c.Enable()
	} else {
		c.Disable()
	}

	actions := make(map[byte]action, 2*len(menuOrder))
	for i, cat := range menuOrder {
		actions[highKeys[i]] = action{category: cat, highest: true}
		actions[lowKeys[i]] = action{category: cat, highest: false}
	}

	return &Menu{
		store:   store,
		in:      bufio.NewReader(in),
		out:     out,
		color:   c,
		printer: message.NewPrinter(language.English),
		actions: actions,
	}
}

// Run shows the menu until the user quits or input ends.
func (m *Menu) Run() error {
	m.welcome()
	for {
		m.showMenu()
		option, err := m.readOption()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if option == 'Q' {
			return nil
		}

		m.Process(option)

		if err := m.pause(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// Process runs a single menu option and writes its result.
func (m *Menu) Process(option byte) {
	option = byte(unicode.ToUpper(rune(option)))

	if option == 'A' {
		m.populationChanges()
		return
	}

	act, ok := m.actions[option]
	if !ok {
		fmt.Fprintln(m.out, m.color.Red("Invalid option selected"))
		fmt.Fprintln(m.out, "Please Select a valid menu option")
		return
	}

	query, word := m.store.MinBy, "lowest"
	if act.highest {
		query, word = m.store.MaxBy, "highest"
	}

	rec, err := query(act.category)
	if err != nil {
		fmt.Fprintf(m.out, "%s %v\n", m.color.Red("Error:"), err)
		return
	}

	// only counts are digit-grouped; rates and years are preformatted
	rate := strconv.FormatFloat(rec.Rate(act.category), 'f', 4, 64)
	m.printer.Fprintf(m.out, "The %s %s rate was %s in %s with a total of %d %s.\n",
		word, strings.ToLower(act.category.String()), rate,
		strconv.Itoa(rec.Year), rec.Count(act.category), act.category.Plural())
}

func (m *Menu) populationChanges() {
	changes, err := m.store.PopulationChanges()
	if err != nil {
		fmt.Fprintf(m.out, "%s %v\n", m.color.Red("Error:"), err)
		return
	}

	fmt.Fprintln(m.out, m.color.Bold("Consecutive year population changes"))
	for _, ch := range changes {
		m.printer.Fprintf(m.out, "Between %s and %s there was a %s%% population change with a total increase of %d\n",
			strconv.Itoa(ch.FromYear), strconv.Itoa(ch.ToYear), ch.PercentString(), ch.Absolute)
	}
}

func (m *Menu) readOption() (byte, error) {
	line, err := m.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}
	return byte(unicode.ToUpper(rune(line[0]))), nil
}

func (m *Menu) pause() error {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Hit enter key to continue ...")
	_, err := m.in.ReadString('\n')
	return err
}

func (m *Menu) welcome() {
	bar := strings.Repeat("*", 70)
	fmt.Fprintln(m.out, bar)
	fmt.Fprintln(m.out, m.color.Bold("\t\t\t Welcome to the US Crime Stats Application"))
	fmt.Fprintln(m.out, bar)
}

func (m *Menu) showMenu() {
	w := m.out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Please select an option or 'Q' to quit")
	fmt.Fprintln(w)

	span := ""
	if first, last := m.store.At(0), m.store.At(m.store.Len()-1); first != nil {
		span = fmt.Sprintf(" from %d - %d", first.Year, last.Year)
	}
	fmt.Fprintf(w, "A.\tPopulation growth percentage for each consecutive year%s\n", span)

	fmt.Fprintln(w)
	fmt.Fprintln(w, m.color.Yellow("**********\tHIGHEST RATE STATISTICS\t**********"))
	fmt.Fprintln(w)
	for i, cat := range menuOrder {
		fmt.Fprintf(w, "%c.\tWhat year was the %s rate the highest?\n", highKeys[i], strings.ToLower(cat.String()))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, m.color.Yellow("**********\tLOWEST RATE STATISTICS\t**********"))
	fmt.Fprintln(w)
	for i, cat := range menuOrder {
		fmt.Fprintf(w, "%c.\tWhat year was the %s rate the lowest?\n", lowKeys[i], strings.ToLower(cat.String()))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Q.\tQuit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Enter your selection: ")
}

// FormatElapsed renders a run duration the way the exit message shows it.
func FormatElapsed(d time.Duration) string {
	mins := int64(d / time.Minute)
	secs := int64(d % time.Minute / time.Second)
	ms := int64(d % time.Second / time.Millisecond)
	return fmt.Sprintf("Elapsed time: %d Minutes : %d Seconds : %d Milliseconds", mins, secs, ms)
}
