package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/forms"
	"github.com/m04kA/TravelBuddy-Client/internal/tui"
	"github.com/m04kA/TravelBuddy-Client/internal/typeahead"
	"github.com/m04kA/TravelBuddy-Client/internal/usecase/accounts"
	"github.com/m04kA/TravelBuddy-Client/internal/usecase/create_details"
	"github.com/m04kA/TravelBuddy-Client/internal/usecase/register_station"
	"github.com/m04kA/TravelBuddy-Client/internal/usecase/search_tickets"
)

// command подкоманда CLI
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{}

func init() {
	for _, c := range []command{
		{"pick", "interactively search and pick a station", runPick},
		{"list-stations", "list every station of a type", runListStations},
		{"add-station", "register an airport, bus station or train station (admin)", runAddStation},
		{"add-details", "add bus, train or flight details (admin)", runAddDetails},
		{"search-tickets", "search available tickets or your bookings", runSearchTickets},
		{"register", "register a client account", runRegister},
		{"login", "log in as a client", runLogin},
		{"admin-login", "log in as an administrator", runAdminLogin},
		{"logout", "remove the stored client or admin token", runLogout},
		{"whoami", "show who is logged in", runWhoAmI},
		{"profile", "show or update the logged-in profile", runProfile},
		{"serve", "serve session status and lookups over local HTTP", runServe},
	} {
		commands[c.name] = c
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n%s", name, flagSet.FlagUsages())
	}
	return flagSet
}

// runPicker запускает интерактивный выбор для контрола
func runPicker(control *typeahead.Control) (domain.StationView, bool, error) {
	picker := tui.NewPicker(control)
	defer picker.Close()

	final, err := tea.NewProgram(picker).Run()
	if err != nil {
		return domain.StationView{}, false, fmt.Errorf("picker: %w", err)
	}
	result, ok := final.(tui.Picker)
	if !ok {
		return domain.StationView{}, false, nil
	}
	view, selected := result.Selected()
	return view, selected, nil
}

func runPick(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("pick")
	entity := flagSet.StringP("type", "t", "bus", "station type: airport, bus or train")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	t, err := domain.ParseEntityType(*entity)
	if err != nil {
		return err
	}

	control, err := typeahead.New(typeahead.Config{
		EntityType:     t,
		Label:          "Search " + string(t) + " stations",
		Placeholder:    "Type a name, code or city",
		MinQueryLength: a.cfg.Typeahead.MinQueryLength,
		Debounce:       a.cfg.Typeahead.Debounce(),
		LabelStyle:     domain.LabelCodeAndName,
	}, a.client, a.clock, a.log, a.metrics)
	if err != nil {
		return err
	}
	defer control.Close()

	view, ok, err := runPicker(control)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No station selected.")
		return nil
	}
	fmt.Printf("%s\t%s\n", view.ID, view.Label(domain.LabelCodeAndName))
	return nil
}

func runListStations(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("list-stations")
	entity := flagSet.StringP("type", "t", "bus", "station type: airport, bus or train")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	t, err := domain.ParseEntityType(*entity)
	if err != nil {
		return err
	}

	stations, err := a.client.ListStations(ctx, t)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		fmt.Println("No stations registered.")
		return nil
	}
	for _, s := range stations {
		v := domain.ViewOf(s)
		fmt.Printf("%-6s %-40s %s\n", v.ID, v.Label(domain.LabelCodeAndName), v.CityLocation)
	}
	return nil
}

func runAddStation(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("add-station")
	entity := flagSet.StringP("type", "t", "", "station type: airport, bus or train")
	name := flagSet.String("name", "", "full name")
	code := flagSet.String("code", "", "station code (upper-cased)")
	city := flagSet.String("city", "", "city")
	country := flagSet.String("country", "", "country")
	timezone := flagSet.String("timezone", "", "timezone (airports only)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	t, err := domain.ParseEntityType(*entity)
	if err != nil {
		return err
	}

	shell, err := register_station.NewShell(t, a.client, a.log, a.metrics)
	if err != nil {
		return err
	}

	l := shell.Layout()
	values := map[string]string{l.FullName: *name, l.Code: *code, l.City: *city, l.Country: *country}
	if l.Timezone != "" {
		values[l.Timezone] = *timezone
	}
	if err := fill(shell.Form(), values); err != nil {
		return err
	}

	status, err := shell.Submit(ctx)
	printStatus(status.Message, status.Success)
	if errors.Is(err, register_station.ErrInvalidForm) {
		printFormErrors(shell.Form())
	}
	return err
}

func runAddDetails(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("add-details")
	kindFlag := flagSet.StringP("kind", "k", "", "transport kind: bus, train or flight")
	number := flagSet.String("number", "", "bus, train or flight number")
	line := flagSet.String("line", "", "line or airline")
	from := flagSet.String("from", "", "departure station id (picked interactively when empty)")
	to := flagSet.String("to", "", "arrival station id (picked interactively when empty)")
	depDate := flagSet.String("departure-date", "", "departure date YYYY-MM-DD")
	depTime := flagSet.String("departure-time", "", "departure time HH:MM")
	arrDate := flagSet.String("arrival-date", "", "arrival date YYYY-MM-DD")
	arrTime := flagSet.String("arrival-time", "", "arrival time HH:MM")
	duration := flagSet.String("duration", "", "duration, e.g. 2h 30m")
	price := flagSet.String("price", "", "price")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	kind, err := domain.ParseTransportKind(*kindFlag)
	if err != nil {
		return err
	}

	shell, err := create_details.NewShell(kind, a.client, a.client, a.clock, create_details.TypeaheadSettings{
		MinQueryLength: a.cfg.Typeahead.MinQueryLength,
		Debounce:       a.cfg.Typeahead.Debounce(),
	}, a.log, a.metrics)
	if err != nil {
		return err
	}
	defer shell.Close()

	l := shell.Layout()
	if err := fill(shell.Form(), map[string]string{
		l.Number:        *number,
		l.Line:          *line,
		l.DepartureDate: *depDate,
		l.DepartureTime: *depTime,
		l.ArrivalDate:   *arrDate,
		l.ArrivalTime:   *arrTime,
		l.Duration:      *duration,
		l.Price:         *price,
	}); err != nil {
		return err
	}

	if err := bindStation(shell.Form(), l.Departure, shell.Departure(), *from); err != nil {
		return err
	}
	if err := bindStation(shell.Form(), l.Arrival, shell.Arrival(), *to); err != nil {
		return err
	}

	status, err := shell.Submit(ctx)
	printStatus(status.Message, status.Success)
	if errors.Is(err, create_details.ErrInvalidForm) {
		printFormErrors(shell.Form())
	}
	return err
}

// bindStation записывает id станции в поле или запускает пикер, если id не задан
func bindStation(form *forms.Form, field string, control *typeahead.Control, id string) error {
	id = strings.TrimSpace(id)
	if id != "" {
		control.WriteValue(id)
		return form.Set(field, id)
	}

	_, _, err := runPicker(control)
	return err
}

func runSearchTickets(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("search-tickets")
	kindFlag := flagSet.StringP("kind", "k", "bus", "transport kind: bus, train or flight")
	from := flagSet.String("from", "", "departure station id")
	to := flagSet.String("to", "", "arrival station id")
	pick := flagSet.Bool("pick", false, "pick departure and arrival stations interactively")
	date := flagSet.String("date", "", "departure date YYYY-MM-DD")
	at := flagSet.String("time", "", "departure time HH:MM")
	minPrice := flagSet.String("min-price", "", "minimum price")
	maxPrice := flagSet.String("max-price", "", "maximum price")
	carrier := flagSet.String("carrier", "", "line or airline")
	byCarrier := flagSet.Bool("by-carrier", false, "list every ticket of --carrier, ignoring other criteria")
	existing := flagSet.Bool("existing", false, "search existing bookings instead of available tickets")
	email := flagSet.String("bookings-for", "", "list bookings made with this email instead of searching")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	kind, err := domain.ParseTransportKind(*kindFlag)
	if err != nil {
		return err
	}

	if flagSet.Changed("bookings-for") {
		bookings, err := a.lookup.MyBookings(ctx, *email)
		if err != nil {
			return err
		}
		printBookings(bookings)
		return nil
	}

	if *byCarrier {
		tickets, err := a.lookup.ByCarrier(ctx, kind, *carrier)
		if err != nil {
			return err
		}
		printTickets(tickets)
		return nil
	}

	shell, err := search_tickets.NewShell(kind, a.client, a.client, a.clock, search_tickets.TypeaheadSettings{
		MinQueryLength: a.cfg.Typeahead.MinQueryLength,
		Debounce:       a.cfg.Typeahead.Debounce(),
	}, a.log, a.metrics)
	if err != nil {
		return err
	}
	defer shell.Close()

	l := shell.Layout()
	if err := fill(shell.Form(), map[string]string{
		l.DepartureDate: *date,
		l.DepartureTime: *at,
		l.MinPrice:      *minPrice,
		l.MaxPrice:      *maxPrice,
		l.Carrier:       *carrier,
	}); err != nil {
		return err
	}

	for _, s := range []struct {
		field   string
		control *typeahead.Control
		id      string
	}{
		{l.Departure, shell.Departure(), *from},
		{l.Arrival, shell.Arrival(), *to},
	} {
		if s.id == "" && !*pick {
			continue
		}
		if err := bindStation(shell.Form(), s.field, s.control, s.id); err != nil {
			return err
		}
	}

	if *existing {
		bookings, err := shell.SearchBookings(ctx)
		if errors.Is(err, search_tickets.ErrInvalidForm) {
			printStatus(search_tickets.InvalidCriteriaMessage, false)
			printFormErrors(shell.Form())
		}
		if err != nil {
			return err
		}
		printBookings(bookings)
		return nil
	}

	result, err := shell.Search(ctx)
	if errors.Is(err, search_tickets.ErrInvalidForm) {
		printStatus(result.Message, false)
		printFormErrors(shell.Form())
		return err
	}
	if result.Message != "" {
		printStatus(result.Message, err == nil)
	}
	printTickets(result.Tickets)
	return err
}

func runRegister(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("register")
	username := flagSet.String("username", "", "username")
	email := flagSet.String("email", "", "email")
	password := flagSet.String("password", "", "password")
	firstName := flagSet.String("first-name", "", "first name")
	lastName := flagSet.String("last-name", "", "last name")
	phone := flagSet.String("phone", "", "phone in international format")
	address := flagSet.String("address", "", "address (optional)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	form := accounts.NewRegistrationForm()
	if err := fill(form, map[string]string{
		accounts.FieldUsername:  *username,
		accounts.FieldEmail:     *email,
		accounts.FieldPassword:  *password,
		accounts.FieldFirstName: *firstName,
		accounts.FieldLastName:  *lastName,
		accounts.FieldPhone:     *phone,
		accounts.FieldAddress:   *address,
	}); err != nil {
		return err
	}

	status, err := a.accounts.Register(ctx, form)
	printStatus(status.Message, status.Success)
	if errors.Is(err, accounts.ErrInvalidForm) {
		printFormErrors(form)
	}
	return err
}

func runLogin(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("login")
	user := flagSet.StringP("user", "u", "", "username or email")
	password := flagSet.StringP("password", "p", "", "password")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	form := accounts.NewLoginForm()
	if err := fill(form, map[string]string{
		accounts.FieldUsernameOrEmail: *user,
		accounts.FieldPassword:        *password,
	}); err != nil {
		return err
	}

	status, profile, err := a.accounts.Login(ctx, form)
	printStatus(status.Message, status.Success)
	if errors.Is(err, accounts.ErrInvalidForm) {
		printFormErrors(form)
	}
	if profile != nil {
		fmt.Printf("Welcome, %s %s (%s)\n", profile.FirstName, profile.LastName, profile.Username)
	}
	return err
}

func runAdminLogin(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("admin-login")
	username := flagSet.StringP("username", "u", "", "admin username")
	password := flagSet.StringP("password", "p", "", "password")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	form := accounts.NewAdminLoginForm()
	if err := fill(form, map[string]string{
		accounts.FieldAdminUsername: *username,
		accounts.FieldAdminPassword: *password,
	}); err != nil {
		return err
	}

	status, _, err := a.accounts.AdminLogin(ctx, form)
	printStatus(status.Message, status.Success)
	if errors.Is(err, accounts.ErrInvalidForm) {
		printFormErrors(form)
	}
	return err
}

func runLogout(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("logout")
	as := flagSet.String("as", string(accounts.PrincipalClient), "client or admin")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	p, err := accounts.ParsePrincipal(*as)
	if err != nil {
		return err
	}
	if err := a.accounts.Logout(ctx, p); err != nil {
		return err
	}
	printStatus("Logged out", true)
	return nil
}

func runWhoAmI(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("whoami").Parse(args); err != nil {
		return err
	}

	h := a.accounts.WhoAmI(ctx)
	if !h.AnyLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}
	if h.Client.LoggedIn {
		fmt.Printf("client: %s\n", h.Client.Name)
	}
	if h.Admin.LoggedIn {
		fmt.Printf("admin:  %s\n", h.Admin.Name)
	}
	return nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	flagSet := newFlagSet("profile")
	as := flagSet.String("as", string(accounts.PrincipalClient), "client or admin")
	update := flagSet.Bool("update", false, "update the client profile with the given fields")
	firstName := flagSet.String("first-name", "", "new first name")
	lastName := flagSet.String("last-name", "", "new last name")
	email := flagSet.String("email", "", "new email")
	phone := flagSet.String("phone", "", "new phone")
	address := flagSet.String("address", "", "new address")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	p, err := accounts.ParsePrincipal(*as)
	if err != nil {
		return err
	}

	if *update {
		if p != accounts.PrincipalClient {
			return fmt.Errorf("%w: only client profiles can be updated", accounts.ErrUnknownPrincipal)
		}
		form := accounts.NewProfileForm()
		if err := fill(form, map[string]string{
			accounts.FieldFirstName: *firstName,
			accounts.FieldLastName:  *lastName,
			accounts.FieldEmail:     *email,
			accounts.FieldPhone:     *phone,
			accounts.FieldAddress:   *address,
		}); err != nil {
			return err
		}
		status, _, err := a.accounts.UpdateProfile(ctx, form)
		printStatus(status.Message, status.Success)
		if errors.Is(err, accounts.ErrInvalidForm) {
			printFormErrors(form)
		}
		return err
	}

	switch p {
	case accounts.PrincipalAdmin:
		profile, err := a.accounts.AdminProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("username:   %s\ncreated:    %s\nlast login: %s\n",
			profile.AdminUsername, profile.CreatedAt, profile.LastLogin)
	default:
		profile, err := a.accounts.ClientProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("username: %s\nname:     %s %s\nemail:    %s\nphone:    %s\naddress:  %s\n",
			profile.Username, profile.FirstName, profile.LastName, profile.Email, profile.Phone, profile.Address)
	}
	return nil
}

// fill записывает непустые значения флагов в форму, остальные поля сохраняют начальные значения
func fill(form *forms.Form, values map[string]string) error {
	for name, value := range values {
		if value == "" {
			continue
		}
		if err := form.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func printStatus(message string, success bool) {
	if message == "" {
		return
	}
	fmt.Println(tui.DefaultTheme.RenderStatus(message, success))
}

func printFormErrors(form *forms.Form) {
	for _, e := range form.Errors() {
		fmt.Println(tui.DefaultTheme.RenderFieldError(form.Label(e.Field), e.Message))
	}
}

func printTickets(tickets []domain.AvailableTicket) {
	for _, t := range tickets {
		fmt.Printf("#%-5d %-10s %-40s %-35s %10s  %s\n",
			t.ID, t.Number, t.Route(), t.Schedule(), t.FormattedPrice(), t.AdditionalInfo)
	}
}

func printBookings(bookings []domain.Booking) {
	if len(bookings) == 0 {
		fmt.Println("No bookings found.")
		return
	}
	for i := range bookings {
		b := &bookings[i]
		fmt.Printf("%-12s %-10s %s <%s>\n", b.BookingID, b.TransportNumber(), b.ClientName, b.ClientEmail)
	}
}
