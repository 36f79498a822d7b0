package constants

// Question id range accepted as anchors
const MinQuestionID = 1
const MaxQuestionID = 174

// Image paths are rebased onto this folder token
const AssetFolderMarker = "CyberSec_files/"

// Bounded sibling lookahead
const ImageLookahead = 5
const ExplanationLookahead = 10

// Block elements that may carry a question anchor
const AnchorBlockSelector = "p, h1, h2, h3, h4, h5, h6"

// Output
const DefaultFormat = "json"
const OutputSuffix = "_questions"

var ExplanationLabelPrefixes = []string{"Explanation:", "Explain:"}

// Spellings of the highlight color used to mark correct choices
var CorrectColors = []string{"#ff0000", "red"}

var MultipleAnswerCues = []string{
	"choose two",
	"choose three",
	"choose all",
	"select two",
	"select three",
	"select all",
	"which two",
	"which three",
	"what two",
	"what three",
}
