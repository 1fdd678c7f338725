// internal/adapters/out/firestore/collections_fs.go
package firestore

import (
	"strings"

	"cloud.google.com/go/firestore"
)

// ============================================================
// Vendor-scoped collection layout
//
//   vendors/{vendorID}/sales/{saleID}
//   vendors/{vendorID}/catalog/{entryID}
//   vendors/{vendorID}/clients/{clientID}
//   vendors/{vendorID}/branding/config
//   vendors/{vendorID}/client_portal/{saleID}
//
// The vendor ID is the Firebase UID of the reseller, so each
// console operator only ever sees their own inventory.
// ============================================================

const (
	colVendors  = "vendors"
	colSales    = "sales"
	colCatalog  = "catalog"
	colClients  = "clients"
	colBranding = "branding"
	colPortal   = "client_portal"

	docBrandingConfig = "config"
)

func vendorDoc(client *firestore.Client, vendorID string) *firestore.DocumentRef {
	return client.Collection(colVendors).Doc(strings.TrimSpace(vendorID))
}

func salesCol(client *firestore.Client, vendorID string) *firestore.CollectionRef {
	return vendorDoc(client, vendorID).Collection(colSales)
}

func catalogCol(client *firestore.Client, vendorID string) *firestore.CollectionRef {
	return vendorDoc(client, vendorID).Collection(colCatalog)
}

func clientsCol(client *firestore.Client, vendorID string) *firestore.CollectionRef {
	return vendorDoc(client, vendorID).Collection(colClients)
}

func brandingDoc(client *firestore.Client, vendorID string) *firestore.DocumentRef {
	return vendorDoc(client, vendorID).Collection(colBranding).Doc(docBrandingConfig)
}

func portalCol(client *firestore.Client, vendorID string) *firestore.CollectionRef {
	return vendorDoc(client, vendorID).Collection(colPortal)
}
