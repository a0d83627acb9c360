// Command aquamon is the terminal front end of the aquaculture monitoring
// client. Commands map one-to-one onto the dashboard tabs of the mobile
// build; which commands a login may use is decided by the same role routing.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/app"
	"github.com/haiquanvn/aquamon/internal/config"
	"github.com/haiquanvn/aquamon/internal/filter"
	"github.com/haiquanvn/aquamon/internal/logger"
	"github.com/haiquanvn/aquamon/internal/metrics"
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/haiquanvn/aquamon/internal/service"
	"github.com/haiquanvn/aquamon/internal/session"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)
	metrics.StartMetricsServer(conf)

	store, err := session.NewFileStore(conf.Session.Dir)
	handleErr("opening session store", err)

	client := api.New(conf.API, store)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := &cli{
		store:       store,
		client:      client,
		auth:        service.NewAuthService(client, store),
		areas:       service.NewAreaService(client),
		users:       service.NewUserService(client),
		emails:      service.NewEmailService(client),
		predictions: service.NewPredictionService(client),
		out:         os.Stdout,
	}

	if err := c.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func handleErr(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error while %s: %v\n", msg, err)
		os.Exit(1)
	}
}

type cli struct {
	store       session.Store
	client      *api.Client
	auth        *service.AuthService
	areas       *service.AreaService
	users       *service.UserService
	emails      *service.EmailService
	predictions *service.PredictionService
	out         *os.File
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.usage()
		return nil
	}

	switch args[0] {
	case "login":
		return c.cmdLogin(ctx, args[1:])
	case "logout":
		return c.auth.Logout(ctx)
	case "profile":
		return c.cmdProfile(ctx)
	case "areas":
		return c.cmdAreas(ctx, args[1:])
	case "area":
		return c.cmdArea(ctx, args[1:])
	case "users":
		return c.cmdUsers(ctx, args[1:])
	case "predictions":
		return c.cmdPredictions(ctx, args[1:])
	case "jobs":
		return c.cmdJobs(ctx, args[1:])
	case "emails":
		return c.cmdEmails(ctx, args[1:])
	case "register":
		return c.cmdRegister(ctx, args[1:])
	case "batch":
		return c.cmdBatch(ctx, args[1:])
	case "update-profile":
		return c.cmdUpdateProfile(ctx, args[1:])
	case "change-password":
		return c.cmdChangePassword(ctx, args[1:])
	default:
		c.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *cli) usage() {
	fmt.Fprintln(c.out, `usage: aquamon <command> [flags]

commands:
  login            authenticate and store the session
  logout           clear the stored session
  profile          show the stored profile and available tabs
  areas            list farming areas (public)
  area             show one area with its latest prediction (public)
  users            list user accounts
  predictions      list predictions
  jobs             list batch-prediction jobs
  emails           list email subscriptions
  register         subscribe an email address to an area (public)
  batch            submit a CSV or spreadsheet of prediction inputs
  update-profile   edit the logged-in account
  change-password  change the password of the logged-in account`)
}

// requireTab refuses a command when the stored role's dashboard does not
// carry the matching tab. The server would refuse too; this just fails
// earlier and clearer.
func (c *cli) requireTab(ctx context.Context, tab app.Tab) error {
	profile, err := c.store.Profile(ctx)
	if err != nil {
		return err
	}
	if !app.HasTab(app.DashboardFor(profile), tab) {
		return fmt.Errorf("your role has no access to %s, log in with an authorized account", tab)
	}
	return nil
}

func (c *cli) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := c.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "logged in as %s (%s)\n", profile.Username, profile.Role)
	fmt.Fprintf(c.out, "dashboard: %s\n", app.RouteFor(model.Role(profile.Role)))
	return nil
}

func (c *cli) cmdProfile(ctx context.Context) error {
	profile, err := c.auth.Profile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Fprintln(c.out, "not logged in, citizen mode")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "username\t%s\n", profile.Username)
	fmt.Fprintf(w, "email\t%s\n", profile.Email)
	fmt.Fprintf(w, "role\t%s\n", profile.Role)
	fmt.Fprintf(w, "province\t%s\n", profile.Province)
	if profile.District != nil {
		fmt.Fprintf(w, "district\t%s\n", *profile.District)
	}
	tabs := app.DashboardFor(profile)
	names := make([]string, len(tabs))
	for i, tab := range tabs {
		names[i] = string(tab)
	}
	fmt.Fprintf(w, "tabs\t%s\n", strings.Join(names, ", "))
	return w.Flush()
}

func (c *cli) cmdAreas(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("areas", flag.ExitOnError)
	query := fs.String("q", "", "free-text search")
	areaType := fs.String("type", "", "filter by area type (oyster, cobia)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	areas, err := c.areas.List(ctx)
	if err != nil {
		return err
	}
	areas = filter.Apply(areas, filter.Options[model.Area]{
		Query:      *query,
		Fields:     func(a model.Area) []string { return []string{a.Name, a.Province, a.District} },
		Category:   *areaType,
		CategoryOf: func(a model.Area) string { return string(a.AreaType) },
	})

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE(ha)\tPROVINCE\tDISTRICT")
	for _, a := range areas {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\n", a.ID, a.Name, a.AreaType, a.Size, a.Province, a.District)
	}
	return w.Flush()
}

func (c *cli) cmdArea(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("area", flag.ExitOnError)
	id := fs.Int64("id", 0, "area id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("-id is required")
	}

	detail, err := c.areas.Detail(ctx, *id)
	if err != nil {
		return err
	}

	a := detail.Area
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "name\t%s\n", a.Name)
	fmt.Fprintf(w, "type\t%s\n", a.AreaType)
	fmt.Fprintf(w, "size\t%.2f ha\n", a.Size)
	fmt.Fprintf(w, "location\t%.4f, %.4f\n", a.Latitude, a.Longitude)
	fmt.Fprintf(w, "province\t%s\n", a.Province)
	if a.District != "" {
		fmt.Fprintf(w, "district\t%s\n", a.District)
	}
	if detail.Latest != nil {
		fmt.Fprintf(w, "latest outlook\t%s (%s)\n", detail.Latest.Result, detail.Latest.CreatedAt)
	} else {
		fmt.Fprintf(w, "latest outlook\tnone yet\n")
	}
	return w.Flush()
}

func (c *cli) cmdUsers(ctx context.Context, args []string) error {
	if err := c.requireTab(ctx, app.TabUsers); err != nil {
		return err
	}

	fs := flag.NewFlagSet("users", flag.ExitOnError)
	search := fs.String("search", "", "search username or email")
	role := fs.String("role", "", "filter by role")
	province := fs.String("province", "", "filter by province")
	limit := fs.Int("limit", 20, "page size")
	offset := fs.Int("offset", 0, "page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := c.users.Page(ctx, api.PaginatedUsersQuery{
		Search:   *search,
		Role:     *role,
		Province: *province,
		Limit:    *limit,
		Offset:   *offset,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tLEVEL\tSTATUS")
	for _, u := range page.Users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.ManagerLevel(), u.Status)
	}
	fmt.Fprintf(w, "total\t%d\n", page.Total)
	return w.Flush()
}

func (c *cli) cmdPredictions(ctx context.Context, args []string) error {
	if err := c.requireTab(ctx, app.TabPredictions); err != nil {
		return err
	}

	fs := flag.NewFlagSet("predictions", flag.ExitOnError)
	limit := fs.Int("limit", 20, "page size")
	mine := fs.Bool("mine", false, "only predictions created by the logged-in user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var userID int64
	if *mine {
		profile, err := c.store.Profile(ctx)
		if err != nil {
			return err
		}
		if profile == nil {
			return errors.New("not logged in")
		}
		userID = profile.ID
	}

	// Accumulate every page; the server is known to repeat boundary rows.
	pager := filter.NewPager(*limit, func(p model.Prediction) int64 { return p.ID })
	for pager.HasMore() {
		var (
			page *api.PredictionsPage
			err  error
		)
		if *mine {
			page, err = c.client.UserPredictions(ctx, userID, pager.Limit(), pager.Offset())
		} else {
			page, err = c.client.AdminPredictions(ctx, pager.Limit(), pager.Offset())
		}
		if err != nil {
			return err
		}
		pager.Merge(page.Predictions)
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAREA\tOUTLOOK\tCREATED")
	for _, p := range pager.Items() {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", p.ID, p.AreaID, p.Result, p.CreatedAt)
	}
	return w.Flush()
}

func (c *cli) cmdJobs(ctx context.Context, args []string) error {
	if err := c.requireTab(ctx, app.TabJobs); err != nil {
		return err
	}

	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	state := fs.String("state", "", "filter by state (completed, active, failed, waiting)")
	query := fs.String("q", "", "free-text search")
	limit := fs.Int("limit", 20, "page size")
	offset := fs.Int("offset", 0, "page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	jobs, err := c.client.Jobs(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	jobs = filter.Apply(jobs, filter.Options[model.Job]{
		Query:      *query,
		Fields:     func(j model.Job) []string { return []string{j.Name, j.Creator} },
		Category:   *state,
		CategoryOf: func(j model.Job) string { return string(j.State) },
	})

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATE\tCREATOR\tCREATED\tCOMPLETED")
	for _, j := range jobs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", j.ID, j.Name, j.State, j.Creator, j.CreatedOn, j.CompletedOn)
	}
	return w.Flush()
}

func (c *cli) cmdEmails(ctx context.Context, args []string) error {
	if err := c.requireTab(ctx, app.TabEmails); err != nil {
		return err
	}

	fs := flag.NewFlagSet("emails", flag.ExitOnError)
	limit := fs.Int("limit", 20, "page size")
	offset := fs.Int("offset", 0, "page offset")
	area := fs.Int64("area", 0, "list subscribers of one area instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		subs []model.EmailSubscription
		err  error
	)
	if *area != 0 {
		subs, err = c.emails.Subscribers(ctx, *area)
	} else {
		subs, err = c.emails.Page(ctx, *limit, *offset)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tAREA\tACTIVE\tCREATED")
	for _, sub := range subs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%t\t%s\n", sub.ID, sub.Email, sub.AreaID, sub.IsActive, sub.CreatedAt)
	}
	return w.Flush()
}

// cmdRegister walks the OTP flow in one sitting: send the code, read it from
// the terminal, verify.
func (c *cli) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	area := fs.Int64("area", 0, "area id to subscribe to")
	email := fs.String("email", "", "email address to subscribe")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *area == 0 {
		return errors.New("-area is required")
	}

	flow := service.NewRegistrationFlow(c.client, *area)
	if err := flow.SendOTP(ctx, *email); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "a 6-digit code was sent to %s\n", *email)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(c.out, "enter code (or 'resend'): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		input := strings.TrimSpace(line)

		if input == "resend" {
			if err := flow.Resend(ctx); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "a fresh code was sent")
			continue
		}

		if err := flow.VerifyOTP(ctx, input); err != nil {
			fmt.Fprintln(c.out, "verification failed:", err)
			continue
		}
		fmt.Fprintf(c.out, "subscription for %s confirmed\n", *email)
		return nil
	}
}

func (c *cli) cmdBatch(ctx context.Context, args []string) error {
	if err := c.requireTab(ctx, app.TabPredictions); err != nil {
		return err
	}

	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	path := fs.String("file", "", "CSV or .xlsx/.xls file of prediction inputs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("-file is required")
	}

	file, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer file.Close()

	var result *service.BatchResult
	switch strings.ToLower(filepath.Ext(*path)) {
	case ".xlsx", ".xls":
		result, err = c.predictions.IngestExcel(ctx, filepath.Base(*path), file)
	default:
		result, err = c.predictions.IngestCSV(ctx, file)
	}
	if err != nil {
		return err
	}

	if result.Rows > 0 {
		fmt.Fprintf(c.out, "submitted %d rows, job %d\n", result.Rows, result.JobID)
	} else {
		fmt.Fprintf(c.out, "uploaded, job %d\n", result.JobID)
	}
	return nil
}

// cmdUpdateProfile sends the full account payload; omitted flags keep their
// stored values, role and scope always come from the session.
func (c *cli) cmdUpdateProfile(ctx context.Context, args []string) error {
	profile, err := c.store.Profile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		return errors.New("not logged in")
	}

	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	username := fs.String("username", profile.Username, "display name")
	email := fs.String("email", profile.Email, "email address")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	updated, err := c.auth.UpdateProfile(ctx, api.UserInput{
		Username: *username,
		Email:    *email,
		Phone:    *phone,
		Address:  *address,
		Role:     profile.Role,
		Province: profile.Province,
		District: profile.District,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "profile updated for %s\n", updated.Username)
	return nil
}

func (c *cli) cmdChangePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("change-password", flag.ExitOnError)
	oldPassword := fs.String("old", "", "current password")
	newPassword := fs.String("new", "", "new password, 6 characters minimum")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := c.store.Profile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		return errors.New("not logged in")
	}

	if err := c.auth.ChangePassword(ctx, profile.ID, *oldPassword, *newPassword); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "password changed")
	return nil
}
