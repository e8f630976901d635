package client

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Client is the line-oriented shell over the HTTP API. The cookie jar
// carries the session between commands.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	scanner *bufio.Scanner
	out     io.Writer
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		HTTP:    &http.Client{Jar: jar},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *Client) commands() map[string]func() error {
	return map[string]func() error{
		"register":        c.register,
		"login":           c.login,
		"logout":          c.logout,
		"view_lists":      c.viewLists,
		"create_list":     c.createList,
		"rename_list":     c.renameList,
		"delete_list":     c.deleteList,
		"add_movie":       c.addMovie,
		"remove_movie":    c.removeMovie,
		"update_rating":   c.updateRating,
		"view_user":       c.viewUser,
		"view_user_by_id": c.viewUserByID,
		"update_user":     c.updateUser,
		"delete_user":     c.deleteUser,
	}
}

// Run reads commands from in until quit or EOF.
func (c *Client) Run(in io.Reader, out io.Writer) error {
	c.scanner = bufio.NewScanner(in)
	c.out = out

	actions := c.commands()
	names := make([]string, 0, len(actions)+1)
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	names = append(names, "quit")

	fmt.Fprintln(out, "Welcome to the Movie List Tracker CLI!")
	fmt.Fprintln(out, "Available commands:", strings.Join(names, ", "))

	for {
		fmt.Fprint(out, "\nEnter command: ")
		if !c.scanner.Scan() {
			return c.scanner.Err()
		}
		cmd := strings.TrimSpace(c.scanner.Text())
		if cmd == "quit" {
			return nil
		}
		action, ok := actions[cmd]
		if !ok {
			fmt.Fprintln(out, "Unknown command.")
			continue
		}
		if err := action(); err != nil {
			fmt.Fprintln(out, "request failed:", err)
		}
	}
}

func (c *Client) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(c.scanner.Text())
}

func (c *Client) do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d %s\n", resp.StatusCode, strings.TrimSpace(string(respBody)))
	return nil
}

func seg(s string) string {
	return url.PathEscape(s)
}

func (c *Client) register() error {
	username := c.prompt("Username: ")
	email := c.prompt("Email: ")
	password := c.prompt("Password: ")
	return c.do(http.MethodPost, "/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func (c *Client) login() error {
	username := c.prompt("Username: ")
	password := c.prompt("Password: ")
	return c.do(http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	})
}

func (c *Client) logout() error {
	return c.do(http.MethodPost, "/logout", nil)
}

func (c *Client) viewLists() error {
	return c.do(http.MethodGet, "/lists", nil)
}

func (c *Client) createList() error {
	name := c.prompt("List name: ")
	return c.do(http.MethodPost, "/lists", map[string]string{"name": name})
}

func (c *Client) renameList() error {
	oldName := c.prompt("Current list name: ")
	newName := c.prompt("New list name: ")
	return c.do(http.MethodPut, "/lists/"+seg(oldName)+"/rename", map[string]string{"new_name": newName})
}

func (c *Client) deleteList() error {
	name := c.prompt("List name to delete: ")
	return c.do(http.MethodDelete, "/lists/"+seg(name), nil)
}

func (c *Client) addMovie() error {
	listName := c.prompt("List name: ")
	movieID := c.prompt("Movie ID: ")
	title := c.prompt("Movie title: ")
	raw := c.prompt("Rating (optional): ")

	data := map[string]any{"movie_id": movieID, "title": title}
	if raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", raw)
		}
		data["rating"] = rating
	}
	return c.do(http.MethodPost, "/lists/"+seg(listName)+"/movies", data)
}

func (c *Client) removeMovie() error {
	listName := c.prompt("List name: ")
	movieID := c.prompt("Movie ID: ")
	return c.do(http.MethodDelete, "/lists/"+seg(listName)+"/movies/"+seg(movieID), nil)
}

func (c *Client) updateRating() error {
	listName := c.prompt("List name: ")
	movieID := c.prompt("Movie ID: ")
	raw := c.prompt("New rating: ")

	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("rating %q is not a number", raw)
	}
	return c.do(http.MethodPut, "/lists/"+seg(listName)+"/movies/"+seg(movieID)+"/rating", map[string]float64{"rating": rating})
}

func (c *Client) viewUser() error {
	username := c.prompt("Username to view: ")
	return c.do(http.MethodGet, "/user/"+seg(username), nil)
}

func (c *Client) viewUserByID() error {
	id := c.prompt("User ID to view: ")
	return c.do(http.MethodGet, "/user/id/"+seg(id), nil)
}

func (c *Client) updateUser() error {
	username := c.prompt("Username to update: ")
	fmt.Fprintln(c.out, "Leave a field blank to skip updating it.")
	email := c.prompt("New email: ")
	password := c.prompt("New password: ")

	fields := map[string]string{}
	if email != "" {
		fields["email"] = email
	}
	if password != "" {
		fields["password"] = password
	}
	if len(fields) == 0 {
		fmt.Fprintln(c.out, "No fields to update.")
		return nil
	}
	return c.do(http.MethodPut, "/user/"+seg(username), fields)
}

func (c *Client) deleteUser() error {
	username := c.prompt("Username to delete: ")
	return c.do(http.MethodDelete, "/user/"+seg(username), nil)
}
