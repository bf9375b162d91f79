package response

// Catalogue maps message keys to user-facing text.
type Catalogue map[string]string

// Text returns the text for key, or fallback when the key is missing.
func (c Catalogue) Text(key, fallback string) string {
	if text, ok := c[key]; ok {
		return text
	}
	return fallback
}

// Message keys.
const (
	MsgLogin           = "auth.login"
	MsgRegister        = "auth.register"
	MsgProfile         = "auth.profile"
	MsgCategoryList    = "category.list"
	MsgCategoryGet     = "category.get"
	MsgCategoryCreate  = "category.create"
	MsgCategoryUpdate  = "category.update"
	MsgCategoryDelete  = "category.delete"
	MsgProductList     = "product.list"
	MsgProductGet      = "product.get"
	MsgProductCreate   = "product.create"
	MsgProductUpdate   = "product.update"
	MsgProductDelete   = "product.delete"
	MsgHealthy         = "health.ok"
	MsgValidation      = "error.validation"
	MsgInvalidJSON     = "error.invalid_json"
	MsgMissingToken    = "error.missing_token"
	MsgRouteNotFound   = "error.route_not_found"
	MsgStoreDown       = "error.store_unavailable"
	MsgInternal        = "error.internal"
	MsgCategoryDeleted = "category.deleted"
	MsgProductDeleted  = "product.deleted"
)

// Messages is the active catalogue. Replace entries to localise responses.
var Messages = Catalogue{
	MsgLogin:           "Login successful",
	MsgRegister:        "Registration successful",
	MsgProfile:         "Profile retrieved successfully",
	MsgCategoryList:    "Categories retrieved successfully",
	MsgCategoryGet:     "Category retrieved successfully",
	MsgCategoryCreate:  "Category created successfully",
	MsgCategoryUpdate:  "Category updated successfully",
	MsgCategoryDelete:  "Category deleted successfully",
	MsgProductList:     "Products retrieved successfully",
	MsgProductGet:      "Product retrieved successfully",
	MsgProductCreate:   "Product created successfully",
	MsgProductUpdate:   "Product updated successfully",
	MsgProductDelete:   "Product deleted successfully",
	MsgHealthy:         "Service is healthy",
	MsgValidation:      "Validation failed",
	MsgInvalidJSON:     "Request body is not valid JSON",
	MsgMissingToken:    "Missing or malformed bearer token",
	MsgRouteNotFound:   "Route not found",
	MsgStoreDown:       "Service temporarily unavailable",
	MsgInternal:        "Internal server error",
	MsgCategoryDeleted: "category deleted successfully",
	MsgProductDeleted:  "product deleted successfully",
}
