package lexicon

import (
	"strings"

	"github.com/nl-sre/semantico/internal/semantics"
	"github.com/nl-sre/semantico/lexeme"
)

// defaultLexiconTSV is a small seed lexicon covering the closed-class
// grammar words (articles, prepositions, pronouns, conjunctions, adverbs),
// a handful of common verb conjugations, and the content nouns/adjectives
// that back the semantic database below.
const defaultLexiconTSV = `
el	article	el
la	article	el
los	article	el
las	article	el
un	article	uno
una	article	uno
unos	article	uno
unas	article	uno
a	preposition	a
en	preposition	en
de	preposition	de
con	preposition	con
por	preposition	por
para	preposition	para
sin	preposition	sin
sobre	preposition	sobre
mi	pronoun,article	yo
me	pronoun	yo
te	pronoun	tu
nosotros	pronoun	nosotros
ellos	pronoun	ellos
ella	pronoun	ella
y	conjunction	y
o	conjunction	o
pero	conjunction	pero
que	conjunction	que
muy	adverb	muy
mucho	adverb	mucho
bien	adverb	bien
hoy	adverb	hoy
ayer	adverb	ayer
gusta	verb	gustar
gustan	verb	gustar
gusto	verb	gustar
soy	verb	ser
eres	verb	ser
es	verb	ser
somos	verb	ser
son	verb	ser
estoy	verb	estar
estas	verb	estar
esta	verb	estar
estamos	verb	estar
estan	verb	estar
visito	verb	visitar
visitas	verb	visitar
visita	verb	visitar
visite	verb	visitar
visito	verb	visitar
corro	verb	correr
corres	verb	correr
corre	verb	correr
corremos	verb	correr
corren	verb	correr
voy	verb	ir
vas	verb	ir
va	verb	ir
vamos	verb	ir
van	verb	ir
fui	verb	ir
fue	verb	ir
quiero	verb	querer
quieres	verb	querer
quiere	verb	querer
viaje	verb	viajar
viajo	verb	viajar
roma	noun	roma
coliseo	noun	coliseo
paris	noun	paris
madrid	noun	madrid
amor	noun	amor
odio	noun	odio
paz	noun	paz
ramo	noun	ramo
mora	noun	mora
casa	noun	casa
rosita	noun	rosita
ano	noun	ano
azul	adjective	azul
romano	adjective	romano
grande	adjective	grande
pequeno	adjective	pequeno
pasado	adjective	pasado
`

// defaultSemanticTSV mirrors the seed vocabulary this lexicon was built
// from: a small set of place, sentiment, and object entries whose tag
// overlaps are what drive the context scorer's seed confidences.
const defaultSemanticTSV = `
roma	arquitectura,historia,imperio_romano,geografia
coliseo	arquitectura,historia,imperio_romano,geografia
romano	arquitectura,historia,imperio_romano,geografia
paris	romantico,arte,geografia,ciudad
madrid	espana,geografia,ciudad
amor	sentimiento,romantico,emocion
odio	sentimiento,negativo,emocion
paz	positivo,armonia,emocion
ramo	naturaleza,regalo,objeto
mora	comida,naturaleza,objeto
casa	edificio,hogar,lugar
rosita	femenino,persona
azul	color,frio,cualidad
viaje	geografia,arquitectura
viajo	geografia,arquitectura
pasado	historia,imperio_romano
`

func DefaultLexicon() map[string]lexeme.Word {
	words, err := LoadLexicon(strings.NewReader(defaultLexiconTSV))
	if err != nil {
		panic("lexicon: embedded default lexicon failed to parse: " + err.Error())
	}
	return words
}

func DefaultSemanticDB() *semantics.DB {
	db, err := LoadSemanticDB(strings.NewReader(defaultSemanticTSV))
	if err != nil {
		panic("lexicon: embedded default semantic database failed to parse: " + err.Error())
	}
	return db
}
