package directive

import (
	"bytes"

	"github.com/flosch/pongo2/v6"
)

// Block is the nested content retained between the opening and closing
// tags. *pongo2.NodeWrapper satisfies it.
type Block interface {
	Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error
}

type node struct {
	directive  *Directive
	invocation Invocation
	body       Block
	token      *pongo2.Token
}

func (n *node) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	var body bytes.Buffer
	if err := n.body.Execute(ctx, &body); err != nil {
		return err
	}

	out, err := n.directive.Render(n.invocation, ContextLookup(ctx), body.String())
	if err != nil {
		return n.fail(ctx, err)
	}
	if _, err := writer.WriteString(out); err != nil {
		return n.fail(ctx, err)
	}
	return nil
}

func (n *node) fail(ctx *pongo2.ExecutionContext, err error) *pongo2.Error {
	perr := ctx.OrigError(err, n.token)
	perr.Sender = "tag:" + n.directive.name
	return perr
}
