package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const socialSchema = `
type Query {
  me: User
  user(id: ID!): User
}

type Mutation {
  follow(id: ID!): User
}

type Subscription {
  followed(userId: ID!): User
}

type User {
  id: ID!
  name: String
  friends(first: Int): [User]
  avatar(size: Int): Image
}

type Image {
  url: String
  width(unit: String): Int
}
`

const introspectionSchema = `{"data":{"__schema":{
  "queryType":{"name":"Query"},"mutationType":null,"subscriptionType":null,
  "types":[
    {"kind":"OBJECT","name":"Query","fields":[
      {"name":"version","args":[],"type":{"kind":"SCALAR","name":"String","ofType":null}}
    ]},
    {"kind":"SCALAR","name":"String"}
  ]}}}`

type generateResponse struct {
	RunID  string `json:"run_id"`
	Cached bool   `json:"cached"`
	Count  int    `json:"count"`
	Result struct {
		DepthLimit int `json:"depth_limit"`
		Groups     []struct {
			Kind      string `json:"kind"`
			Documents []struct {
				Name    string `json:"name"`
				Query   string `json:"query"`
				HasArgs bool   `json:"has_args"`
			} `json:"documents"`
		} `json:"groups"`
	} `json:"result"`
}

func postSchema(t *testing.T, query, schema string) *generateResponse {
	t.Helper()
	resp, err := http.Post(getTestURL("/api/generate"+query), "application/graphql", strings.NewReader(schema))
	if err != nil {
		t.Fatalf("failed to post schema: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return &out
}

func getBody(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(getTestURL(path))
	if err != nil {
		t.Fatalf("failed to get %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func getDocument(t *testing.T, path string) *goquery.Document {
	t.Helper()
	status, body := getBody(t, path)
	if status != http.StatusOK {
		t.Fatalf("expected status 200 for %s, got %d", path, status)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return doc
}

func TestHomePageLoads(t *testing.T) {
	status, body := getBody(t, "/")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if !strings.Contains(body, "Generation runs") {
		t.Error("home page does not contain 'Generation runs'")
	}
}

func TestGenerateAndBrowseRun(t *testing.T) {
	gen := postSchema(t, "?save=1&name=social.graphql", socialSchema)
	if gen.RunID == "" {
		t.Fatal("expected a run id")
	}
	if gen.Count != 4 || gen.Result.DepthLimit != 3 {
		t.Errorf("unexpected response: count %d, depth %d", gen.Count, gen.Result.DepthLimit)
	}

	kinds := make([]string, 0, len(gen.Result.Groups))
	for _, g := range gen.Result.Groups {
		kinds = append(kinds, g.Kind)
	}
	if strings.Join(kinds, ",") != "mutation,query,subscription" {
		t.Errorf("unexpected group order: %v", kinds)
	}

	status, doc := getBody(t, "/api/runs/"+gen.RunID+"/query/me")
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	want := "query me($size: Int, $unit: String) {\n" +
		"    me{\n" +
		"        id\n" +
		"        name\n" +
		"        avatar(size: $size){\n" +
		"            url\n" +
		"            width(unit: $unit)\n" +
		"        }\n" +
		"    }\n" +
		"}"
	if doc != want {
		t.Errorf("unexpected me document:\n%s\nwant:\n%s", doc, want)
	}

	catalog := getDocument(t, "/api/runs/"+gen.RunID+"/catalog")
	var sections []string
	catalog.Find("article h2").Each(func(_ int, s *goquery.Selection) {
		sections = append(sections, s.Text())
	})
	if strings.Join(sections, ",") != "Mutations,Queries,Subscriptions" {
		t.Errorf("unexpected catalog sections: %v", sections)
	}
	if n := catalog.Find("article pre code.language-graphql").Length(); n != 4 {
		t.Errorf("expected 4 graphql blocks, got %d", n)
	}

	home := getDocument(t, "/")
	found := false
	home.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		href, _ := row.Find("td a").Attr("href")
		if href == "/api/runs/"+gen.RunID+"/catalog" {
			found = true
			if schema := row.Find("td").Eq(1).Text(); schema != "social.graphql" {
				t.Errorf("expected schema social.graphql, got %q", schema)
			}
		}
	})
	if !found {
		t.Error("home page does not list the saved run")
	}
}

func TestGenerateIsCached(t *testing.T) {
	schema := socialSchema + "\n# cache test\n"
	first := postSchema(t, "?depth=2", schema)
	second := postSchema(t, "?depth=2", schema)

	if first.Cached || !second.Cached {
		t.Errorf("expected only the second response to be cached, got %v and %v", first.Cached, second.Cached)
	}
	if third := postSchema(t, "?depth=4", schema); third.Cached {
		t.Error("expected another depth limit to miss the cache")
	}
}

func TestGenerateIntrospection(t *testing.T) {
	gen := postSchema(t, "?format=introspection", introspectionSchema)
	if gen.Count != 1 || gen.Result.Groups[0].Documents[0].Query != "query version {\n    version\n}" {
		t.Errorf("unexpected introspection result: %+v", gen.Result)
	}
}

func TestGenerateRejectsInvalidSchema(t *testing.T) {
	resp, err := http.Post(getTestURL("/api/generate"), "application/graphql", strings.NewReader("type Query {"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["error"] == "" {
		t.Errorf("expected JSON error body, got %v (%v)", body, err)
	}
}

func TestSecurityHeaders(t *testing.T) {
	resp, err := http.Get(getTestURL("/"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for name, want := range headers {
		if got := resp.Header.Get(name); got != want {
			t.Errorf("expected %s %q, got %q", name, want, got)
		}
	}
}
