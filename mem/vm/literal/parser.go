package literal

// MaxDepth is the deepest nesting of arrays and objects Parse accepts.
const MaxDepth = 32

// Parse parses a single literal that spans the whole input.
//
// The grammar is:
//
//	value  = object | array | number | string | "true" | "false" | "null"
//	object = "{" [ member { "," member } [ "," ] ] "}"
//	member = ( integer | string | identifier ) ":" value
//	array  = "[" [ value { "," value } [ "," ] ] "]"
func Parse(src string) (Value, error) {
	p := &parser{lex: &lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokenEOF {
		return nil, p.unexpected("end of input")
	}

	return v, nil
}

type parser struct {
	lex   *lexer
	tok   token
	depth int
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) unexpected(want string) error {
	got := p.tok.kind.String()
	if p.tok.kind == tokenNumber || p.tok.kind == tokenIdent {
		got += " " + p.tok.text
	}

	return p.lex.errorf(p.tok.offset, "expected %s, found %s", want, got)
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return p.unexpected(kind.String())
	}

	return p.advance()
}

func (p *parser) parseValue() (Value, error) {
	switch p.tok.kind {
	case tokenLBrace:
		return p.parseObject()
	case tokenLBracket:
		return p.parseArray()
	case tokenNumber:
		v := Number{Text: p.tok.text}
		return v, p.advance()
	case tokenString:
		v := String{Text: p.tok.text}
		return v, p.advance()
	case tokenIdent:
		return p.parseKeyword()
	default:
		return nil, p.unexpected("value")
	}
}

func (p *parser) parseKeyword() (Value, error) {
	var v Value

	switch p.tok.text {
	case "true":
		v = Bool(true)
	case "false":
		v = Bool(false)
	case "null":
		v = Null{}
	default:
		return nil, p.lex.errorf(p.tok.offset,
			"unknown identifier %q", p.tok.text)
	}

	return v, p.advance()
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return p.lex.errorf(p.tok.offset,
			"nesting deeper than %d levels", MaxDepth)
	}

	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseArray() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.expect(tokenLBracket); err != nil {
		return nil, err
	}

	arr := Array{Elems: []Value{}}
	for p.tok.kind != tokenRBracket {
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		arr.Elems = append(arr.Elems, elem)

		if p.tok.kind != tokenComma {
			break
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(tokenRBracket); err != nil {
		return nil, err
	}

	return arr, nil
}

func (p *parser) parseObject() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}

	obj := Object{Members: []Member{}}
	for p.tok.kind != tokenRBrace {
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}

		obj.Members = append(obj.Members, m)

		if p.tok.kind != tokenComma {
			break
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(tokenRBrace); err != nil {
		return nil, err
	}

	return obj, nil
}

func (p *parser) parseMember() (Member, error) {
	key, err := p.parseKey()
	if err != nil {
		return Member{}, err
	}

	if err := p.expect(tokenColon); err != nil {
		return Member{}, err
	}

	v, err := p.parseValue()
	if err != nil {
		return Member{}, err
	}

	return Member{Key: key, Value: v}, nil
}

func (p *parser) parseKey() (string, error) {
	tok := p.tok

	switch tok.kind {
	case tokenNumber:
		if tok.text[0] == '-' || tok.text[0] == '+' {
			return "", p.lex.errorf(tok.offset,
				"signed number %s cannot be a key", tok.text)
		}
	case tokenString, tokenIdent:
	default:
		return "", p.unexpected("key")
	}

	return tok.text, p.advance()
}
