// Package console implements the interactive terminal session. It shares the
// same services as the HTTP API, so every mutation it performs goes through
// the same single mutual-exclusion scope.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"syscall"

	"golang.org/x/term"

	"lendhub/internal/domain"
	"lendhub/internal/service"
)

// Session drives the interactive menu. The logged-in principal is session
// state only; it is never visible to HTTP requests.
type Session struct {
	catalog   *service.CatalogService
	directory *service.DirectoryService
	ledger    *service.LedgerService
	logger    *slog.Logger

	in  *bufio.Scanner
	out io.Writer

	// readSecret reads a secret without echo. Replaced in tests.
	readSecret func(prompt string) (string, error)

	current *domain.Principal
}

// New creates a console session reading from in and writing to out.
func New(
	catalog *service.CatalogService,
	directory *service.DirectoryService,
	ledger *service.LedgerService,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
) *Session {
	s := &Session{
		catalog:   catalog,
		directory: directory,
		ledger:    ledger,
		logger:    logger,
		in:        bufio.NewScanner(in),
		out:       out,
	}
	s.readSecret = s.defaultReadSecret
	return s
}

// Run executes the menu loop until the user exits, input ends, or the context
// is cancelled.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== Lending Registry ===")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.current == nil {
			done, err := s.loginMenu(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			continue
		}
		done, err := s.mainMenu(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *Session) loginMenu(ctx context.Context) (done bool, err error) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "1. Login")
	fmt.Fprintln(s.out, "2. Exit")

	choice, err := s.prompt("Choose an option: ")
	if err != nil {
		return false, err
	}
	switch choice {
	case "1":
		s.login(ctx)
	case "2":
		fmt.Fprintln(s.out, "Goodbye.")
		return true, nil
	default:
		fmt.Fprintln(s.out, "Invalid option.")
	}
	return false, nil
}

func (s *Session) mainMenu(ctx context.Context) (done bool, err error) {
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Logged in as %s (%s)\n", s.current.Name, s.current.Role)
	fmt.Fprintln(s.out, "1. Search items")
	fmt.Fprintln(s.out, "2. List all items")
	fmt.Fprintln(s.out, "3. Issue item")
	fmt.Fprintln(s.out, "4. Return item")
	if s.current.Role == domain.RoleAdmin {
		fmt.Fprintln(s.out, "5. Add item")
		fmt.Fprintln(s.out, "6. Remove item")
		fmt.Fprintln(s.out, "7. Register user")
		fmt.Fprintln(s.out, "8. View loans")
		fmt.Fprintln(s.out, "9. Logout")
	} else {
		fmt.Fprintln(s.out, "5. Logout")
	}

	choice, err := s.prompt("Choose an option: ")
	if err != nil {
		return false, err
	}

	admin := s.current.Role == domain.RoleAdmin
	switch {
	case choice == "1":
		s.search(ctx)
	case choice == "2":
		s.listItems(ctx)
	case choice == "3":
		s.issue(ctx)
	case choice == "4":
		s.returnItem(ctx)
	case admin && choice == "5":
		s.addItem(ctx)
	case admin && choice == "6":
		s.removeItem(ctx)
	case admin && choice == "7":
		s.registerUser(ctx)
	case admin && choice == "8":
		s.listLoans(ctx)
	case (admin && choice == "9") || (!admin && choice == "5"):
		fmt.Fprintf(s.out, "Logged out %s.\n", s.current.ID)
		s.current = nil
	default:
		fmt.Fprintln(s.out, "Invalid option.")
	}
	return false, nil
}

func (s *Session) login(ctx context.Context) {
	id, err := s.prompt("User ID: ")
	if err != nil {
		return
	}
	secret, err := s.readSecret("Password: ")
	if err != nil {
		fmt.Fprintf(s.out, "Could not read password: %v\n", err)
		return
	}

	p, err := s.directory.Authenticate(ctx, id, secret)
	if err != nil {
		fmt.Fprintln(s.out, "Login failed: invalid credentials.")
		return
	}
	s.current = p
	s.logger.Info("console login", "user_id", p.ID, "role", p.Role)
	fmt.Fprintf(s.out, "Welcome, %s!\n", p.Name)
}

func (s *Session) search(ctx context.Context) {
	query, err := s.prompt("Search (title or author): ")
	if err != nil {
		return
	}
	seq, err := s.catalog.Search(ctx, query)
	if err != nil {
		fmt.Fprintf(s.out, "Search failed: %v\n", err)
		return
	}
	count := 0
	for it := range seq {
		s.printItem(it)
		count++
	}
	if count == 0 {
		fmt.Fprintln(s.out, "No items found.")
	}
}

func (s *Session) listItems(ctx context.Context) {
	items, err := s.catalog.List(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Could not list items: %v\n", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "The catalog is empty.")
		return
	}
	for _, it := range items {
		s.printItem(it)
	}
}

func (s *Session) issue(ctx context.Context) {
	itemID, err := s.prompt("Item ID to issue: ")
	if err != nil {
		return
	}
	loan, err := s.ledger.Issue(ctx, s.current.ID, itemID)
	if err != nil {
		fmt.Fprintf(s.out, "Issue failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Issued %s to %s (loan %s, %s).\n",
		loan.ItemID, loan.PrincipalID, loan.ID, loan.IssueDate.Format("2006-01-02"))
}

func (s *Session) returnItem(ctx context.Context) {
	itemID, err := s.prompt("Item ID to return: ")
	if err != nil {
		return
	}
	loan, err := s.ledger.Return(ctx, itemID)
	if err != nil {
		fmt.Fprintf(s.out, "Return failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Returned %s (loan %s closed %s).\n",
		loan.ItemID, loan.ID, loan.ReturnDate.Format("2006-01-02"))
}

func (s *Session) addItem(ctx context.Context) {
	id, err := s.prompt("Item ID: ")
	if err != nil {
		return
	}
	title, err := s.prompt("Title: ")
	if err != nil {
		return
	}
	author, err := s.prompt("Author: ")
	if err != nil {
		return
	}
	genre, err := s.prompt("Genre: ")
	if err != nil {
		return
	}

	it, err := s.catalog.Add(ctx, domain.AddItemRequest{ID: id, Title: title, Author: author, Genre: genre})
	if err != nil {
		fmt.Fprintf(s.out, "Add failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Added %s: %q.\n", it.ID, it.Title)
}

func (s *Session) removeItem(ctx context.Context) {
	id, err := s.prompt("Item ID to remove: ")
	if err != nil {
		return
	}
	removed, err := s.catalog.Remove(ctx, id)
	if err != nil {
		fmt.Fprintf(s.out, "Remove failed: %v\n", err)
		return
	}
	if removed {
		fmt.Fprintf(s.out, "Removed %s.\n", id)
	} else {
		fmt.Fprintf(s.out, "No item %s in the catalog.\n", id)
	}
}

func (s *Session) registerUser(ctx context.Context) {
	id, err := s.prompt("User ID: ")
	if err != nil {
		return
	}
	name, err := s.prompt("Name: ")
	if err != nil {
		return
	}
	role, err := s.prompt("Role (ADMIN/STUDENT, default STUDENT): ")
	if err != nil {
		return
	}
	secret, err := s.readSecret("Password: ")
	if err != nil {
		fmt.Fprintf(s.out, "Could not read password: %v\n", err)
		return
	}

	p, err := s.directory.Register(ctx, domain.RegisterPrincipalRequest{
		ID:     id,
		Name:   name,
		Role:   strings.ToUpper(strings.TrimSpace(role)),
		Secret: secret,
	})
	if err != nil {
		fmt.Fprintf(s.out, "Registration failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Registered %s (%s).\n", p.ID, p.Role)
}

func (s *Session) listLoans(ctx context.Context) {
	loans, err := s.ledger.List(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Could not list loans: %v\n", err)
		return
	}
	if len(loans) == 0 {
		fmt.Fprintln(s.out, "No loans recorded.")
		return
	}
	for _, l := range loans {
		ret := "-"
		if l.ReturnDate != nil {
			ret = l.ReturnDate.Format("2006-01-02")
		}
		fmt.Fprintf(s.out, "[%s] %s -> %s issued %s returned %s (%s)\n",
			l.ID, l.ItemID, l.PrincipalID, l.IssueDate.Format("2006-01-02"), ret, l.Status)
	}
}

func (s *Session) printItem(it domain.Item) {
	state := "available"
	if !it.Available {
		state = "on loan"
	}
	fmt.Fprintf(s.out, "[%s] %q by %s (%s) - %s\n", it.ID, it.Title, it.Author, it.Genre, state)
}

// prompt writes the prompt and reads one trimmed line. io.EOF ends the session.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) defaultReadSecret(label string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		// Piped input: fall back to a plain line read.
		return s.prompt(label)
	}
	fmt.Fprint(s.out, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(s.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// IsExit reports whether the session ended by user action rather than error.
func IsExit(err error) bool {
	return err == nil || errors.Is(err, io.EOF)
}
