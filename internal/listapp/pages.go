package listapp

import (
	"github.com/vango-dev/liveview/pkg/vdom"
)

// SubmitPage is the form posted to /submit.
func SubmitPage() *vdom.Node {
	return vdom.Div(
		vdom.H1("Submit a message"),
		vdom.Form(
			vdom.Method("post"),
			vdom.Action("/submit"),
			vdom.Label(vdom.For("message"), "Message"),
			vdom.Input(vdom.Type("text"), vdom.Name("message"), vdom.ID("message"), vdom.Required(true)),
			vdom.Input(vdom.Type("submit"), vdom.Value("Add")),
		),
	)
}

// AddedPage confirms a submission.
func AddedPage() *vdom.Node {
	return vdom.Div(
		vdom.H1("Added that item"),
		vdom.P(vdom.A(vdom.Href("/read/10"), "Read the list")),
	)
}

// ListPage renders items, or a placeholder when there are none.
func ListPage(items []string) *vdom.Node {
	body := []*vdom.Node{vdom.H1("Message list")}
	if len(items) == 0 {
		body = append(body, vdom.P("There are no messages yet."))
	}
	for _, item := range items {
		body = append(body, vdom.P("Item: "+item))
	}
	return vdom.Div(body)
}
